package memory

import (
	"context"
	"sort"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/utils/pagination"
)

type AuditRepository struct {
	provider *Provider
}

func newAuditRepository(provider *Provider) portsrepo.AuditRepositoryFacade {
	return &AuditRepository{provider: provider}
}

var _ portsrepo.AuditRepositoryFacade = (*AuditRepository)(nil)

func (r *AuditRepository) Record(ctx context.Context, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendAudit(entry)
	return nil
}

// Update always fails: audit entries are immutable by contract.
func (r *AuditRepository) Update(ctx context.Context, entry domain.AuditLogEntry) error {
	return apperrors.ErrImmutableRecord
}

// Delete always fails: audit entries are immutable by contract.
func (r *AuditRepository) Delete(ctx context.Context, entryID string) error {
	return apperrors.ErrImmutableRecord
}

// sortNewestFirst orders by recorded time descending with the sequence number
// breaking ties, matching the SQL adapters.
func sortNewestFirst(entries []domain.AuditLogEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].RecordedAt.After(entries[j].RecordedAt)
		}
		return entries[i].Sequence > entries[j].Sequence
	})
}

func (r *AuditRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLogEntry, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []domain.AuditLogEntry{}
	for _, entry := range s.auditLog {
		if entry.EntityType == entityType && entry.EntityID == entityID {
			entries = append(entries, entry)
		}
	}
	sortNewestFirst(entries)
	return entries, nil
}

func (r *AuditRepository) FindByDateRange(ctx context.Context, start, end time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	var cursorAt time.Time
	var cursorSeq int64
	hasCursor := false
	if nextToken != nil {
		var err error
		cursorAt, cursorSeq, err = pagination.DecodeAuditCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		hasCursor = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []domain.AuditLogEntry{}
	for _, entry := range s.auditLog {
		if entry.RecordedAt.Before(start) || entry.RecordedAt.After(end) {
			continue
		}
		if hasCursor {
			if entry.RecordedAt.After(cursorAt) {
				continue
			}
			if entry.RecordedAt.Equal(cursorAt) && entry.Sequence >= cursorSeq {
				continue
			}
		}
		entries = append(entries, entry)
	}
	sortNewestFirst(entries)

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeAuditCursor(last.RecordedAt, last.Sequence)
		token = &t
	}
	return entries, token, nil
}

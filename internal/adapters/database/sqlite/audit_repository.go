package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
	"github.com/claimpilot/claims_management_app/internal/utils/pagination"
)

type AuditRepository struct {
	BaseRepository
}

func newAuditRepository(provider *Provider) portsrepo.AuditRepositoryFacade {
	return &AuditRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.AuditRepositoryFacade = (*AuditRepository)(nil)

const insertAuditQuery = `
	INSERT INTO audit_log (entry_id, entity_type, entity_id, action, actor_id, changes, client_ip, user_agent, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`

// insertAuditEntryTx appends one audit row inside an existing transaction so
// the audit write commits or rolls back with the mutation it describes.
func insertAuditEntryTx(ctx context.Context, tx *sql.Tx, entry domain.AuditLogEntry) error {
	m, err := mapping.ToModelAuditLogEntry(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize audit changes for entry "+entry.EntryID, err)
	}
	_, err = tx.ExecContext(ctx, insertAuditQuery,
		m.EntryID,
		m.EntityType,
		m.EntityID,
		m.Action,
		m.ActorID,
		m.ChangesJSON,
		m.ClientIP,
		m.UserAgent,
		m.RecordedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+entry.EntryID, err)
	}
	return nil
}

func (r *AuditRepository) Record(ctx context.Context, entry domain.AuditLogEntry) error {
	db, err := r.DB()
	if err != nil {
		return err
	}
	m, err := mapping.ToModelAuditLogEntry(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize audit changes for entry "+entry.EntryID, err)
	}
	_, err = db.ExecContext(ctx, insertAuditQuery,
		m.EntryID,
		m.EntityType,
		m.EntityID,
		m.Action,
		m.ActorID,
		m.ChangesJSON,
		m.ClientIP,
		m.UserAgent,
		m.RecordedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+entry.EntryID, err)
	}
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

const selectAuditColumns = `
	SELECT entry_id, entity_type, entity_id, action, actor_id, changes, client_ip, user_agent, seq, recorded_at
	FROM audit_log
`

func scanAuditRows(rows *sql.Rows) ([]models.AuditLogEntry, error) {
	defer rows.Close()
	entries := []models.AuditLogEntry{}
	for rows.Next() {
		var m models.AuditLogEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.EntityType,
			&m.EntityID,
			&m.Action,
			&m.ActorID,
			&m.ChangesJSON,
			&m.ClientIP,
			&m.UserAgent,
			&m.Sequence,
			&m.RecordedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit entry rows", err)
	}
	return entries, nil
}

func (r *AuditRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLogEntry, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectAuditColumns + ` WHERE entity_type = ? AND entity_id = ? ORDER BY recorded_at DESC, seq DESC;`
	rows, err := db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries", err)
	}
	entries, err := scanAuditRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAuditLogEntrySlice(entries), nil
}

func (r *AuditRepository) FindByDateRange(ctx context.Context, start, end time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	db, err := r.DB()
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	query := selectAuditColumns + ` WHERE recorded_at >= ? AND recorded_at <= ?`
	args := []interface{}{start, end}
	if nextToken != nil {
		cursorAt, cursorSeq, err := pagination.DecodeAuditCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		// Row-value comparison keeps the page boundary exact on timestamp ties.
		query += ` AND (recorded_at, seq) < (?, ?)`
		args = append(args, cursorAt, cursorSeq)
	}
	query += ` ORDER BY recorded_at DESC, seq DESC LIMIT ?;`
	args = append(args, limit+1)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit entries by date range", err)
	}
	entries, err := scanAuditRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeAuditCursor(last.RecordedAt, last.Sequence)
		token = &t
	}
	return mapping.ToDomainAuditLogEntrySlice(entries), token, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
)

// AuditReader defines read operations for the audit trail. Results are ordered
// by timestamp descending with insertion sequence as a stable tie-break.
type AuditReader interface {
	// FindByEntity returns all entries referencing one entity, newest first.
	FindByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLogEntry, error)

	// FindByDateRange returns a page of entries whose timestamp falls in
	// [start, end], newest first, using token-based pagination.
	FindByDateRange(ctx context.Context, start, end time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
}

// AuditWriter defines the single legitimate write operation on the audit trail
// plus the two that exist only to fail. Update and Delete returning
// apperrors.ErrImmutableRecord is a deliberate contract, not an oversight.
type AuditWriter interface {
	// Record appends one entry. The adapter assigns the insertion sequence.
	Record(ctx context.Context, entry domain.AuditLogEntry) error

	// Update always fails with apperrors.ErrImmutableRecord.
	Update(ctx context.Context, entry domain.AuditLogEntry) error

	// Delete always fails with apperrors.ErrImmutableRecord.
	Delete(ctx context.Context, entryID string) error
}

// AuditRepositoryFacade combines the audit repository interfaces.
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}

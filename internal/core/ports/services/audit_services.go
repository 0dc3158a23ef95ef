package services

import (
	"context"
	"time"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
)

// AuditSvcFacade is the read-only query surface over the audit trail. Entries
// are written exclusively by the mutating operations of the other services.
type AuditSvcFacade interface {
	// QueryByEntity returns all entries referencing one entity, newest first.
	QueryByEntity(ctx context.Context, entityType, entityID string, actor domain.Actor) ([]domain.AuditLogEntry, error)

	// QueryByDateRange returns a page of entries within [start, end], newest
	// first, with a token for the next page.
	QueryByDateRange(ctx context.Context, start, end time.Time, limit int, nextToken *string, actor domain.Actor) ([]domain.AuditLogEntry, *string, error)
}

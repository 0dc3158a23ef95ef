package services

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
)

// ReportingService builds the read-only dashboard over the claim workflow.
// Failures in the underlying aggregates propagate; they are never zeroed.
type ReportingService interface {
	DashboardSnapshot(ctx context.Context, actor domain.Actor) (*domain.DashboardSnapshot, error)
}

package repositories

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository provides the read-only aggregates backing the dashboard.
// Implementations must never mask storage failures with zeroed results.
type ReportingRepository interface {
	// GetApplicationStatusCounts returns the number of applications per status.
	GetApplicationStatusCounts(ctx context.Context) (map[domain.ApplicationStatus]int64, error)

	// GetAmountTotals returns the claimed and approved totals over all applications.
	GetAmountTotals(ctx context.Context) (claimed, approved decimal.Decimal, err error)

	// GetRecentApplications returns the most recent n applications by submission
	// time descending.
	GetRecentApplications(ctx context.Context, n int) ([]domain.Application, error)

	// GetUserRoleCounts returns the number of active users per role.
	GetUserRoleCounts(ctx context.Context) (map[domain.UserRole]int64, error)
}

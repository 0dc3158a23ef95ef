package sqlite

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type ReportingRepository struct {
	BaseRepository
}

func newReportingRepository(provider *Provider) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

func (r *ReportingRepository) GetApplicationStatusCounts(ctx context.Context) (map[domain.ApplicationStatus]int64, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query application status counts", err)
	}
	defer rows.Close()

	counts := map[domain.ApplicationStatus]int64{}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan status count row", err)
		}
		counts[domain.ApplicationStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating status count rows", err)
	}
	return counts, nil
}

// GetAmountTotals sums the decimal text columns in Go. SQLite would coerce them
// to floats, which loses precision on money.
func (r *ReportingRepository) GetAmountTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	db, err := r.DB()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	rows, err := db.QueryContext(ctx, `SELECT total_amount_claimed, total_amount_approved FROM applications;`)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to query amount totals", err)
	}
	defer rows.Close()

	claimed, approved := decimal.Zero, decimal.Zero
	for rows.Next() {
		var c, a decimal.Decimal
		if err := rows.Scan(&c, &a); err != nil {
			return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to scan amount row", err)
		}
		claimed = claimed.Add(c)
		approved = approved.Add(a)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "error iterating amount rows", err)
	}
	return claimed, approved, nil
}

func (r *ReportingRepository) GetRecentApplications(ctx context.Context, n int) ([]domain.Application, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectApplicationColumns + ` ORDER BY submitted_at DESC LIMIT ?;`
	rows, err := db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query recent applications", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		m, err := scanApplication(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan application row", err)
		}
		apps = append(apps, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating recent application rows", err)
	}
	return mapping.ToDomainApplicationSlice(apps), nil
}

func (r *ReportingRepository) GetUserRoleCounts(ctx context.Context) (map[domain.UserRole]int64, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users WHERE deleted_at IS NULL GROUP BY role;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query user role counts", err)
	}
	defer rows.Close()

	counts := map[domain.UserRole]int64{}
	for rows.Next() {
		var role string
		var count int64
		if err := rows.Scan(&role, &count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan role count row", err)
		}
		counts[domain.UserRole(role)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating role count rows", err)
	}
	return counts, nil
}

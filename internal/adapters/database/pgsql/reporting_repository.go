package pgsql

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(provider *Provider) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetApplicationStatusCounts(ctx context.Context) (map[domain.ApplicationStatus]int64, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status;`)
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

func (r *PgxReportingRepository) GetAmountTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	pool, err := r.Pool()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	var claimed, approved decimal.Decimal
	query := `SELECT COALESCE(SUM(total_amount_claimed), 0), COALESCE(SUM(total_amount_approved), 0) FROM applications;`
	if err := pool.QueryRow(ctx, query).Scan(&claimed, &approved); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to query amount totals", err)
	}
	return claimed, approved, nil
}

func (r *PgxReportingRepository) GetRecentApplications(ctx context.Context, n int) ([]domain.Application, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectApplicationColumns + ` ORDER BY submitted_at DESC LIMIT $1;`
	rows, err := pool.Query(ctx, query, n)
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

func (r *PgxReportingRepository) GetUserRoleCounts(ctx context.Context) (map[domain.UserRole]int64, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `SELECT role, COUNT(*) FROM users WHERE deleted_at IS NULL GROUP BY role;`)
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

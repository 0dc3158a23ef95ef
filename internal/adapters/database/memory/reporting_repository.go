package memory

import (
	"context"
	"sort"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type ReportingRepository struct {
	provider *Provider
}

func newReportingRepository(provider *Provider) portsrepo.ReportingRepository {
	return &ReportingRepository{provider: provider}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

func (r *ReportingRepository) GetApplicationStatusCounts(ctx context.Context) (map[domain.ApplicationStatus]int64, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[domain.ApplicationStatus]int64{}
	for _, app := range s.applications {
		counts[app.Status]++
	}
	return counts, nil
}

func (r *ReportingRepository) GetAmountTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	claimed, approved := decimal.Zero, decimal.Zero
	for _, app := range s.applications {
		claimed = claimed.Add(app.TotalAmountClaimed)
		approved = approved.Add(app.TotalAmountApproved)
	}
	return claimed, approved, nil
}

func (r *ReportingRepository) GetRecentApplications(ctx context.Context, n int) ([]domain.Application, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := []domain.Application{}
	for _, app := range s.applications {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].SubmittedAt.After(apps[j].SubmittedAt) })
	if n > 0 && len(apps) > n {
		apps = apps[:n]
	}
	return apps, nil
}

func (r *ReportingRepository) GetUserRoleCounts(ctx context.Context) (map[domain.UserRole]int64, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[domain.UserRole]int64{}
	for _, user := range s.users {
		if user.DeletedAt == nil {
			counts[user.Role]++
		}
	}
	return counts, nil
}

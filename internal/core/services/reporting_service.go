package services

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
)

const dashboardRecentCount = 10

// reportingService assembles the dashboard from the reporting aggregates. Any
// aggregate failure propagates; a partially zeroed dashboard is worse than an
// error.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) DashboardSnapshot(ctx context.Context, actor domain.Actor) (*domain.DashboardSnapshot, error) {
	if err := s.RequireReviewer(actor); err != nil {
		return nil, err
	}

	statusCounts, err := s.reportingRepo.GetApplicationStatusCounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate status counts")
		return nil, err
	}
	claimed, approved, err := s.reportingRepo.GetAmountTotals(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate amount totals")
		return nil, err
	}
	recent, err := s.reportingRepo.GetRecentApplications(ctx, dashboardRecentCount)
	if err != nil {
		s.LogError(ctx, err, "failed to load recent applications")
		return nil, err
	}
	roleCounts, err := s.reportingRepo.GetUserRoleCounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate user role counts")
		return nil, err
	}

	var totalApplications int64
	for _, count := range statusCounts {
		totalApplications += count
	}
	var totalUsers int64
	for _, count := range roleCounts {
		totalUsers += count
	}

	return &domain.DashboardSnapshot{
		ApplicationStats: domain.ApplicationStats{
			Total:         totalApplications,
			ByStatus:      statusCounts,
			TotalClaimed:  claimed,
			TotalApproved: approved,
		},
		UserStats: domain.UserStats{
			Total:  totalUsers,
			ByRole: roleCounts,
		},
		SystemStats: domain.SystemStats{
			RecentApplications: recent,
		},
	}, nil
}

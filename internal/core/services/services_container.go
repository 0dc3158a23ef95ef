package services

import (
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/platform/config"
)

// NewServiceContainer wires every service against the repository provider. The
// review service is built before the application service because the status
// state machine consults the review summary.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	reviewSvc := NewReviewService(repos.ReviewRepo, repos.ApplicationRepo, repos.DocumentRepo)
	applicationSvc := NewApplicationService(repos.ApplicationRepo, reviewSvc)
	expenseSvc := NewExpenseService(repos.ExpenseRepo, repos.ApplicationRepo)
	documentSvc := NewDocumentService(repos.DocumentRepo, repos.ApplicationRepo)
	auditSvc := NewAuditService(repos.AuditRepo)
	userSvc := NewUserService(repos.UserRepo)
	authSvc := NewAuthService(cfg, userSvc)
	reportingSvc := NewReportingService(repos.ReportingRepo)

	return &portssvc.ServiceContainer{
		Application: applicationSvc,
		Review:      reviewSvc,
		Expense:     expenseSvc,
		Document:    documentSvc,
		Audit:       auditSvc,
		User:        userSvc,
		Auth:        authSvc,
		Reporting:   reportingSvc,
	}
}

package sqlite

import (
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
)

func newRepositoryProvider(provider *Provider) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ApplicationRepo: newApplicationRepository(provider),
		ExpenseRepo:     newExpenseRepository(provider),
		DocumentRepo:    newDocumentRepository(provider),
		ReviewRepo:      newReviewRepository(provider),
		AuditRepo:       newAuditRepository(provider),
		UserRepo:        newUserRepository(provider),
		ReportingRepo:   newReportingRepository(provider),
	}
}

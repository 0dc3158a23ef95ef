package pgsql

import (
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
)

// newRepositoryProvider wires every pgx-backed repository against the shared
// provider. Called once the connection pool is up.
func newRepositoryProvider(provider *Provider) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ApplicationRepo: newPgxApplicationRepository(provider),
		ExpenseRepo:     newPgxExpenseRepository(provider),
		DocumentRepo:    newPgxDocumentRepository(provider),
		ReviewRepo:      newPgxReviewRepository(provider),
		AuditRepo:       newPgxAuditRepository(provider),
		UserRepo:        newPgxUserRepository(provider),
		ReportingRepo:   newPgxReportingRepository(provider),
	}
}

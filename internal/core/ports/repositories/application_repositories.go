package repositories

import (
	"context"
	"time"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplicationSortKey enumerates the columns applications may be sorted by.
// Unknown keys are rejected with a validation error before reaching a repository.
type ApplicationSortKey string

const (
	SortBySubmittedAt     ApplicationSortKey = "submittedAt"
	SortByReferenceNumber ApplicationSortKey = "referenceNumber"
	SortByAmountClaimed   ApplicationSortKey = "totalAmountClaimed"
	SortByStatus          ApplicationSortKey = "status"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ApplicationListFilter narrows and pages an application listing.
type ApplicationListFilter struct {
	Status        *domain.ApplicationStatus
	EmployeeID    *string
	SubmittedFrom *time.Time
	SubmittedTo   *time.Time
	SortKey       ApplicationSortKey
	SortOrder     SortOrder
	Limit         int
	Offset        int
}

// StatusUpdate carries one optimistic status write. ExpectedStatus is the
// status the caller read before deciding; the write fails with a conflict
// error when the stored status no longer matches it.
type StatusUpdate struct {
	ApplicationID  string
	ExpectedStatus domain.ApplicationStatus
	TargetStatus   domain.ApplicationStatus
	ReviewedBy     string
	ReviewedAt     time.Time
	Comments       *string
	ApprovedAmount *decimal.Decimal
}

// ApplicationReader defines read operations for claim applications.
type ApplicationReader interface {
	// FindApplicationByID retrieves a specific application by its unique identifier.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error)

	// ListApplications retrieves a page of applications matching the filter along
	// with the total number of matches.
	ListApplications(ctx context.Context, filter ApplicationListFilter) ([]domain.Application, int64, error)
}

// ApplicationWriter defines write operations for claim applications. Every
// writer method persists the supplied audit entry as part of the same logical
// operation: if the audit write fails the mutation fails with it.
type ApplicationWriter interface {
	// SaveApplication persists an application, its expense items and the audit
	// entry as one unit: all visible or none.
	SaveApplication(ctx context.Context, app domain.Application, items []domain.ExpenseItem, entry domain.AuditLogEntry) error

	// UpdateApplicationStatus performs the optimistic status write described by
	// upd. It fails with apperrors.ErrConflict when the stored status differs
	// from upd.ExpectedStatus, and with apperrors.ErrNotFound when the
	// application does not exist.
	UpdateApplicationStatus(ctx context.Context, upd StatusUpdate, entry domain.AuditLogEntry) error

	// DeleteApplication removes the application and cascades to its expense
	// items and documents. The audit entry is recorded before the rows go away.
	DeleteApplication(ctx context.Context, applicationID string, entry domain.AuditLogEntry) error

	// NextReferenceSequence reserves the next value of the human-readable
	// reference number sequence.
	NextReferenceSequence(ctx context.Context) (int64, error)
}

// ApplicationRepositoryFacade combines all application repository interfaces.
type ApplicationRepositoryFacade interface {
	ApplicationReader
	ApplicationWriter
}

package repositories

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense items.
type ExpenseReader interface {
	// FindExpenseItemByID retrieves a single expense item.
	FindExpenseItemByID(ctx context.Context, expenseID string) (*domain.ExpenseItem, error)

	// FindExpenseItemsByApplicationID retrieves every expense item of one application.
	FindExpenseItemsByApplicationID(ctx context.Context, applicationID string) ([]domain.ExpenseItem, error)
}

// ExpenseWriter defines write operations for expense items.
type ExpenseWriter interface {
	// SaveExpenseItem persists one additional item for an existing application
	// together with its audit entry.
	SaveExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error

	// UpdateExpenseItem updates an item's reviewed fields together with its
	// audit entry.
	UpdateExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

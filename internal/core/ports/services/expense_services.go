package services

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ExpenseSvcFacade is the expense ledger surface of one application.
type ExpenseSvcFacade interface {
	// AddItem attaches one more expense item to an existing application.
	AddItem(ctx context.Context, applicationID string, req dto.CreateExpenseItemRequest, actor domain.Actor) (*domain.ExpenseItem, error)

	// ListItems returns the expense items of an application.
	ListItems(ctx context.Context, applicationID string) ([]domain.ExpenseItem, error)

	// Totals recomputes claimed/approved sums over all items of an application.
	Totals(ctx context.Context, applicationID string) (*domain.LedgerTotals, error)

	// ApproveItem sets the approved amount of one item. Negative amounts and
	// amounts above the item's claim fail with a validation error.
	ApproveItem(ctx context.Context, expenseID string, amount decimal.Decimal, actor domain.Actor) (*domain.ExpenseItem, error)
}

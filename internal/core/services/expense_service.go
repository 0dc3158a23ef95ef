package services

import (
	"context"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/utils/auditlog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// expenseService manages the bill-line ledger attached to an application.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	appRepo     portsrepo.ApplicationReader
}

func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, appRepo portsrepo.ApplicationReader) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo, appRepo: appRepo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) AddItem(ctx context.Context, applicationID string, req dto.CreateExpenseItemRequest, actor domain.Actor) (*domain.ExpenseItem, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.StatusPending && !actor.Role.IsReviewer() {
		return nil, apperrors.NewAppError(422, "expense items can only be added while the application is pending", apperrors.ErrTransitionNotPermitted)
	}
	if req.AmountClaimed.IsNegative() {
		return nil, apperrors.NewValidationError("claimed amount cannot be negative")
	}

	now := time.Now().UTC()
	item := domain.ExpenseItem{
		ExpenseID:      uuid.NewString(),
		ApplicationID:  applicationID,
		BillNumber:     req.BillNumber,
		BillDate:       req.BillDate,
		Description:    req.Description,
		AmountClaimed:  req.AmountClaimed,
		AmountApproved: decimal.Zero,
		AuditFields:    newAuditFields(actor.UserID, now),
	}

	entry := auditlog.NewEntry(domain.EntityExpenseItem, item.ExpenseID, domain.ActionCreate, actor).
		WithDetail("applicationID", applicationID).
		WithDetail("amountClaimed", req.AmountClaimed.String()).
		At(now).
		Build()

	if err := s.expenseRepo.SaveExpenseItem(ctx, item, entry); err != nil {
		s.LogError(ctx, err, "failed to save expense item", "application_id", applicationID)
		return nil, err
	}
	return &item, nil
}

func (s *expenseService) ListItems(ctx context.Context, applicationID string) ([]domain.ExpenseItem, error) {
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.expenseRepo.FindExpenseItemsByApplicationID(ctx, applicationID)
}

// Totals recomputes the ledger aggregate from the items on every call.
func (s *expenseService) Totals(ctx context.Context, applicationID string) (*domain.LedgerTotals, error) {
	items, err := s.ListItems(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	totals := domain.SumExpenseTotals(items)
	return &totals, nil
}

func (s *expenseService) ApproveItem(ctx context.Context, expenseID string, amount decimal.Decimal, actor domain.Actor) (*domain.ExpenseItem, error) {
	if err := s.RequireReviewer(actor); err != nil {
		return nil, err
	}
	item, err := s.expenseRepo.FindExpenseItemByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, apperrors.NewValidationError("approved amount cannot be negative")
	}
	if amount.GreaterThan(item.AmountClaimed) {
		return nil, apperrors.NewValidationError("approved amount " + amount.String() + " exceeds claimed amount " + item.AmountClaimed.String())
	}

	now := time.Now().UTC()
	previous := item.AmountApproved
	item.AmountApproved = amount
	item.LastUpdatedAt = now
	item.LastUpdatedBy = actor.UserID

	entry := auditlog.NewEntry(domain.EntityExpenseItem, expenseID, domain.ActionApprove, actor).
		WithChange("amountApproved", previous.String(), amount.String()).
		At(now).
		Build()

	if err := s.expenseRepo.UpdateExpenseItem(ctx, *item, entry); err != nil {
		s.LogError(ctx, err, "failed to approve expense item", "expense_id", expenseID)
		return nil, err
	}
	return item, nil
}

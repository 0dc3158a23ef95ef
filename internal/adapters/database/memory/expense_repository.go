package memory

import (
	"context"
	"sort"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
)

type ExpenseRepository struct {
	provider *Provider
}

func newExpenseRepository(provider *Provider) portsrepo.ExpenseRepositoryFacade {
	return &ExpenseRepository{provider: provider}
}

var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

func (r *ExpenseRepository) FindExpenseItemByID(ctx context.Context, expenseID string) (*domain.ExpenseItem, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.expenseItems[expenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &item, nil
}

func (r *ExpenseRepository) FindExpenseItemsByApplicationID(ctx context.Context, applicationID string) ([]domain.ExpenseItem, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []domain.ExpenseItem{}
	for _, item := range s.expenseItems {
		if item.ApplicationID == applicationID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].BillDate.Equal(items[j].BillDate) {
			return items[i].BillDate.Before(items[j].BillDate)
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r *ExpenseRepository) SaveExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expenseItems[item.ExpenseID]; exists {
		return apperrors.ErrDuplicate
	}
	s.expenseItems[item.ExpenseID] = item
	s.appendAudit(entry)
	return nil
}

func (r *ExpenseRepository) UpdateExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenseItems[item.ExpenseID]; !ok {
		return apperrors.NewNotFoundError("expense item " + item.ExpenseID + " not found")
	}
	s.expenseItems[item.ExpenseID] = item
	s.appendAudit(entry)
	return nil
}

package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
)

type ApplicationRepository struct {
	provider *Provider
}

func newApplicationRepository(provider *Provider) portsrepo.ApplicationRepositoryFacade {
	return &ApplicationRepository{provider: provider}
}

var _ portsrepo.ApplicationRepositoryFacade = (*ApplicationRepository)(nil)

func (r *ApplicationRepository) SaveApplication(ctx context.Context, app domain.Application, items []domain.ExpenseItem, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.applications[app.ApplicationID]; exists {
		return apperrors.ErrDuplicate
	}
	s.applications[app.ApplicationID] = app
	inserted := make([]string, 0, len(items))
	for _, item := range items {
		if _, exists := s.expenseItems[item.ExpenseID]; exists {
			// Compensate the partial write before reporting failure.
			for _, id := range inserted {
				delete(s.expenseItems, id)
			}
			delete(s.applications, app.ApplicationID)
			return apperrors.ErrDuplicate
		}
		s.expenseItems[item.ExpenseID] = item
		inserted = append(inserted, item.ExpenseID)
	}
	s.appendAudit(entry)
	return nil
}

func (r *ApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.applications[applicationID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &app, nil
}

func (r *ApplicationRepository) ListApplications(ctx context.Context, filter portsrepo.ApplicationListFilter) ([]domain.Application, int64, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []domain.Application{}
	for _, app := range s.applications {
		if filter.Status != nil && app.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && app.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.SubmittedFrom != nil && app.SubmittedAt.Before(*filter.SubmittedFrom) {
			continue
		}
		if filter.SubmittedTo != nil && app.SubmittedAt.After(*filter.SubmittedTo) {
			continue
		}
		matched = append(matched, app)
	}

	if err := sortApplications(matched, filter.SortKey, filter.SortOrder); err != nil {
		return nil, 0, err
	}

	total := int64(len(matched))
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func sortApplications(apps []domain.Application, key portsrepo.ApplicationSortKey, order portsrepo.SortOrder) error {
	var less func(a, b domain.Application) bool
	switch key {
	case portsrepo.SortBySubmittedAt:
		less = func(a, b domain.Application) bool { return a.SubmittedAt.Before(b.SubmittedAt) }
	case portsrepo.SortByReferenceNumber:
		less = func(a, b domain.Application) bool {
			return strings.Compare(a.ReferenceNumber, b.ReferenceNumber) < 0
		}
	case portsrepo.SortByAmountClaimed:
		less = func(a, b domain.Application) bool {
			return a.TotalAmountClaimed.Cmp(b.TotalAmountClaimed) < 0
		}
	case portsrepo.SortByStatus:
		less = func(a, b domain.Application) bool {
			return strings.Compare(string(a.Status), string(b.Status)) < 0
		}
	default:
		return apperrors.NewValidationError("unknown sort key " + string(key))
	}
	sort.SliceStable(apps, func(i, j int) bool {
		if order == portsrepo.SortAsc {
			return less(apps[i], apps[j])
		}
		return less(apps[j], apps[i])
	})
	return nil
}

func (r *ApplicationRepository) UpdateApplicationStatus(ctx context.Context, upd portsrepo.StatusUpdate, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[upd.ApplicationID]
	if !ok {
		return apperrors.NewNotFoundError("application " + upd.ApplicationID + " not found")
	}
	if app.Status != upd.ExpectedStatus {
		return apperrors.NewConflictError("application " + upd.ApplicationID + " status changed since read")
	}

	app.Status = upd.TargetStatus
	app.ReviewedBy = &upd.ReviewedBy
	reviewedAt := upd.ReviewedAt
	app.ReviewedAt = &reviewedAt
	if upd.Comments != nil {
		app.ReviewerComments = upd.Comments
	}
	if upd.ApprovedAmount != nil {
		app.TotalAmountApproved = *upd.ApprovedAmount
	}
	app.LastUpdatedAt = upd.ReviewedAt
	app.LastUpdatedBy = upd.ReviewedBy
	s.applications[upd.ApplicationID] = app

	s.appendAudit(entry)
	return nil
}

func (r *ApplicationRepository) DeleteApplication(ctx context.Context, applicationID string, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.applications[applicationID]; !ok {
		return apperrors.NewNotFoundError("application " + applicationID + " not found")
	}
	s.appendAudit(entry)
	for id, item := range s.expenseItems {
		if item.ApplicationID == applicationID {
			delete(s.expenseItems, id)
		}
	}
	for id, doc := range s.documents {
		if doc.ApplicationID == applicationID {
			delete(s.documents, id)
		}
	}
	delete(s.applications, applicationID)
	return nil
}

func (r *ApplicationRepository) NextReferenceSequence(ctx context.Context) (int64, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refSeq++
	return s.refSeq, nil
}

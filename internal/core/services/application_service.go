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
	"github.com/claimpilot/claims_management_app/internal/utils/refnum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// applicationService implements the claim lifecycle: submission, listing, the
// guarded status state machine and deletion.
type applicationService struct {
	BaseService
	appRepo   portsrepo.ApplicationRepositoryFacade
	reviewSvc portssvc.ReviewSvcFacade
}

// NewApplicationService creates the application service. The review service is
// consulted as the state machine's guard before terminal transitions.
func NewApplicationService(appRepo portsrepo.ApplicationRepositoryFacade, reviewSvc portssvc.ReviewSvcFacade) portssvc.ApplicationSvcFacade {
	return &applicationService{appRepo: appRepo, reviewSvc: reviewSvc}
}

var _ portssvc.ApplicationSvcFacade = (*applicationService)(nil)

func (s *applicationService) SubmitApplication(ctx context.Context, req dto.SubmitApplicationRequest, actor domain.Actor) (*domain.Application, error) {
	if req.TreatmentTo.Before(req.TreatmentFrom) {
		return nil, apperrors.NewValidationError("treatment end date precedes start date")
	}
	for _, item := range req.Items {
		if item.AmountClaimed.IsNegative() {
			return nil, apperrors.NewValidationError("expense item " + item.BillNumber + " has a negative claimed amount")
		}
	}

	seq, err := s.appRepo.NextReferenceSequence(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to reserve reference sequence")
		return nil, err
	}

	now := time.Now().UTC()
	applicationID := uuid.NewString()
	referenceNumber := refnum.Format(seq, now)

	items := make([]domain.ExpenseItem, len(req.Items))
	totalClaimed := decimal.Zero
	for i, itemReq := range req.Items {
		items[i] = domain.ExpenseItem{
			ExpenseID:      uuid.NewString(),
			ApplicationID:  applicationID,
			BillNumber:     itemReq.BillNumber,
			BillDate:       itemReq.BillDate,
			Description:    itemReq.Description,
			AmountClaimed:  itemReq.AmountClaimed,
			AmountApproved: decimal.Zero,
			AuditFields:    newAuditFields(actor.UserID, now),
		}
		totalClaimed = totalClaimed.Add(itemReq.AmountClaimed)
	}

	app := domain.Application{
		ApplicationID:       applicationID,
		ReferenceNumber:     referenceNumber,
		EmployeeID:          req.EmployeeID,
		EmployeeName:        req.EmployeeName,
		PatientName:         req.PatientName,
		PatientRelation:     req.PatientRelation,
		TreatmentType:       req.TreatmentType,
		HospitalName:        req.HospitalName,
		TreatmentFrom:       req.TreatmentFrom,
		TreatmentTo:         req.TreatmentTo,
		Status:              domain.StatusPending,
		TotalAmountClaimed:  totalClaimed,
		TotalAmountApproved: decimal.Zero,
		SubmittedAt:         now,
		AuditFields:         newAuditFields(actor.UserID, now),
	}

	entry := auditlog.NewEntry(domain.EntityApplication, applicationID, domain.ActionCreate, actor).
		WithDetail("referenceNumber", referenceNumber).
		WithDetail("totalAmountClaimed", totalClaimed.String()).
		WithDetail("itemCount", len(items)).
		At(now).
		Build()

	if err := s.appRepo.SaveApplication(ctx, app, items, entry); err != nil {
		s.LogError(ctx, err, "failed to save application", "application_id", applicationID)
		return nil, err
	}

	s.LogInfo(ctx, "application submitted",
		"application_id", applicationID,
		"reference_number", referenceNumber,
		"total_claimed", totalClaimed.String())
	return &app, nil
}

func (s *applicationService) GetApplication(ctx context.Context, applicationID string) (*domain.Application, error) {
	return s.appRepo.FindApplicationByID(ctx, applicationID)
}

func (s *applicationService) ListApplications(ctx context.Context, filter portsrepo.ApplicationListFilter) ([]domain.Application, int64, error) {
	if filter.SortKey == "" {
		filter.SortKey = portsrepo.SortBySubmittedAt
	}
	if filter.SortOrder == "" {
		filter.SortOrder = portsrepo.SortDesc
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return s.appRepo.ListApplications(ctx, filter)
}

func (s *applicationService) UpdateStatus(ctx context.Context, applicationID string, req dto.UpdateStatusRequest, actor domain.Actor) (*domain.Application, error) {
	target := domain.ApplicationStatus(req.TargetStatus)
	if !domain.IsValidStatus(target) {
		return nil, apperrors.NewValidationError("unknown target status " + req.TargetStatus)
	}
	if err := s.RequireReviewer(actor); err != nil {
		return nil, err
	}

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	current := app.Status

	if !domain.CanTransition(current, target) {
		return nil, apperrors.NewAppError(422,
			"transition from "+string(current)+" to "+string(target)+" is not permitted",
			apperrors.ErrTransitionNotPermitted)
	}

	// Terminal decisions need a matching final-stage review on record.
	if current == domain.StatusUnderReview && (target == domain.StatusApproved || target == domain.StatusRejected) {
		summary, err := s.reviewSvc.Summarize(ctx, applicationID)
		if err != nil {
			return nil, err
		}
		if summary.FinalDecision == nil || !finalDecisionPermits(*summary.FinalDecision, target) {
			return nil, apperrors.NewAppError(422,
				"no final review decision supports transition to "+string(target),
				apperrors.ErrTransitionNotPermitted)
		}
	}

	if req.ApprovedAmount != nil {
		if req.ApprovedAmount.IsNegative() {
			return nil, apperrors.NewValidationError("approved amount must not be negative")
		}
		if req.ApprovedAmount.GreaterThan(app.TotalAmountClaimed) {
			return nil, apperrors.NewValidationError("approved amount exceeds claimed total")
		}
	}

	now := time.Now().UTC()
	action := domain.ActionUpdate
	switch target {
	case domain.StatusApproved:
		action = domain.ActionApprove
	case domain.StatusRejected:
		action = domain.ActionReject
	}
	entry := auditlog.NewEntry(domain.EntityApplication, applicationID, action, actor).
		WithChange("status", string(current), string(target)).
		At(now).
		Build()

	upd := portsrepo.StatusUpdate{
		ApplicationID:  applicationID,
		ExpectedStatus: current,
		TargetStatus:   target,
		ReviewedBy:     actor.UserID,
		ReviewedAt:     now,
		Comments:       req.Comments,
		ApprovedAmount: req.ApprovedAmount,
	}
	if err := s.appRepo.UpdateApplicationStatus(ctx, upd, entry); err != nil {
		s.LogError(ctx, err, "failed to update application status",
			"application_id", applicationID,
			"target_status", string(target))
		return nil, err
	}

	s.LogInfo(ctx, "application status updated",
		"application_id", applicationID,
		"from", string(current),
		"to", string(target))
	return s.appRepo.FindApplicationByID(ctx, applicationID)
}

// finalDecisionPermits maps the latest final-stage decision onto the statuses
// it authorizes. NEEDS_CLARIFICATION permits neither terminal outcome; the
// caller is expected to route to CLARIFICATION_REQUIRED instead.
func finalDecisionPermits(decision domain.ReviewDecision, target domain.ApplicationStatus) bool {
	switch target {
	case domain.StatusApproved:
		return decision == domain.DecisionApproved
	case domain.StatusRejected:
		return decision == domain.DecisionRejected
	default:
		return false
	}
}

func (s *applicationService) DeleteApplication(ctx context.Context, applicationID string, actor domain.Actor) error {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() {
		if app.CreatedBy != actor.UserID {
			return apperrors.ErrForbidden
		}
		if app.Status != domain.StatusPending {
			return apperrors.NewAppError(422,
				"application "+applicationID+" can no longer be deleted by its owner",
				apperrors.ErrTransitionNotPermitted)
		}
	}

	entry := auditlog.NewEntry(domain.EntityApplication, applicationID, domain.ActionDelete, actor).
		WithDetail("referenceNumber", app.ReferenceNumber).
		WithDetail("status", string(app.Status)).
		Build()

	if err := s.appRepo.DeleteApplication(ctx, applicationID, entry); err != nil {
		s.LogError(ctx, err, "failed to delete application", "application_id", applicationID)
		return err
	}
	s.LogInfo(ctx, "application deleted", "application_id", applicationID)
	return nil
}

// newAuditFields stamps creation metadata shared by all new records.
func newAuditFields(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/utils/auditlog"
	"github.com/google/uuid"
)

// reviewService implements the review engine: eligibility passes, per-document
// verification, comment threads, stage decisions and the aggregated summary.
type reviewService struct {
	BaseService
	reviewRepo portsrepo.ReviewRepositoryFacade
	appRepo    portsrepo.ApplicationReader
	docRepo    portsrepo.DocumentReader
}

func NewReviewService(reviewRepo portsrepo.ReviewRepositoryFacade, appRepo portsrepo.ApplicationReader, docRepo portsrepo.DocumentReader) portssvc.ReviewSvcFacade {
	return &reviewService{reviewRepo: reviewRepo, appRepo: appRepo, docRepo: docRepo}
}

var _ portssvc.ReviewSvcFacade = (*reviewService)(nil)

func (s *reviewService) PerformEligibilityCheck(ctx context.Context, applicationID string, req dto.PerformEligibilityCheckRequest, actor domain.Actor) (*domain.EligibilityCheck, error) {
	if err := s.RequireReviewer(actor); err != nil {
		return nil, err
	}
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}

	proposed := domain.EligibilityStatus(req.EligibilityStatus)
	switch proposed {
	case "", domain.Eligible, domain.NotEligible, domain.Conditional:
	default:
		return nil, apperrors.NewValidationError("unknown eligibility status " + req.EligibilityStatus)
	}
	permission := domain.PriorPermissionStatus(req.PriorPermission)
	switch permission {
	case "":
		permission = domain.PermissionNotRequired
	case domain.PermissionNotRequired, domain.PermissionObtained, domain.PermissionPending:
	default:
		return nil, apperrors.NewValidationError("unknown prior permission status " + req.PriorPermission)
	}

	flags := domain.EligibilityFlags{
		CategoryProofValid:   req.CategoryProofValid,
		EmployeeIDVerified:   req.EmployeeIDVerified,
		MedicalCardValid:     req.MedicalCardValid,
		RelationshipVerified: req.RelationshipVerified,
		WithinClaimLimit:     req.WithinClaimLimit,
		TreatmentCovered:     req.TreatmentCovered,
	}
	// Identity gate failures override whatever status the reviewer proposed.
	derived, reasons := domain.DeriveEligibilityStatus(flags, proposed)

	now := time.Now().UTC()
	check := domain.EligibilityCheck{
		CheckID:           uuid.NewString(),
		ApplicationID:     applicationID,
		Flags:             flags,
		PriorPermission:   permission,
		EligibilityStatus: derived,
		Reasons:           reasons,
		Conditions:        req.Conditions,
		AuditFields:       newAuditFields(actor.UserID, now),
	}

	entry := auditlog.NewEntry(domain.EntityEligibilityCheck, check.CheckID, domain.ActionCreate, actor).
		WithDetail("applicationID", applicationID).
		WithDetail("eligibilityStatus", string(derived)).
		At(now).
		Build()

	if err := s.reviewRepo.SaveEligibilityCheck(ctx, check, entry); err != nil {
		s.LogError(ctx, err, "failed to save eligibility check", "application_id", applicationID)
		return nil, err
	}
	if derived != proposed && proposed != "" {
		s.LogInfo(ctx, "eligibility status overridden by identity gate",
			"application_id", applicationID,
			"proposed", string(proposed),
			"derived", string(derived))
	}
	return &check, nil
}

func (s *reviewService) ReviewDocument(ctx context.Context, applicationID, documentID string, req dto.ReviewDocumentRequest, actor domain.Actor) (*domain.DocumentReview, error) {
	if err := s.RequireReviewer(actor); err != nil {
		return nil, err
	}
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.ApplicationID != applicationID {
		return nil, apperrors.NewValidationError("document " + documentID + " does not belong to application " + applicationID)
	}

	flags := domain.DocumentReviewFlags{
		IsVerified: req.IsVerified,
		IsComplete: req.IsComplete,
		IsLegible:  req.IsLegible,
	}
	now := time.Now().UTC()
	review := domain.DocumentReview{
		ReviewID:           uuid.NewString(),
		ApplicationID:      applicationID,
		DocumentID:         documentID,
		Flags:              flags,
		Remarks:            req.Remarks,
		VerificationStatus: domain.DeriveVerificationStatus(flags),
		AuditFields:        newAuditFields(actor.UserID, now),
	}

	entry := auditlog.NewEntry(domain.EntityDocumentReview, review.ReviewID, domain.ActionCreate, actor).
		WithDetail("applicationID", applicationID).
		WithDetail("documentID", documentID).
		WithDetail("verificationStatus", string(review.VerificationStatus)).
		At(now).
		Build()

	if err := s.reviewRepo.SaveDocumentReview(ctx, review, entry); err != nil {
		s.LogError(ctx, err, "failed to save document review", "document_id", documentID)
		return nil, err
	}
	return &review, nil
}

func (s *reviewService) AddComment(ctx context.Context, applicationID string, req dto.CreateCommentRequest, actor domain.Actor) (*domain.Comment, error) {
	commentType := domain.CommentType(req.CommentType)
	switch commentType {
	case domain.CommentInquiry, domain.CommentClarification, domain.CommentObservation, domain.CommentRecommendation:
	default:
		return nil, apperrors.NewValidationError("unknown comment type " + req.CommentType)
	}
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := domain.Comment{
		CommentID:     uuid.NewString(),
		ApplicationID: applicationID,
		AuthorID:      actor.UserID,
		AuthorRole:    actor.Role,
		CommentText:   req.CommentText,
		CommentType:   commentType,
		IsInternal:    req.IsInternal,
		IsResolved:    false,
		AuditFields:   newAuditFields(actor.UserID, now),
	}

	entry := auditlog.NewEntry(domain.EntityComment, comment.CommentID, domain.ActionCreate, actor).
		WithDetail("applicationID", applicationID).
		WithDetail("commentType", string(commentType)).
		At(now).
		Build()

	if err := s.reviewRepo.SaveComment(ctx, comment, entry); err != nil {
		s.LogError(ctx, err, "failed to save comment", "application_id", applicationID)
		return nil, err
	}
	return &comment, nil
}

// ResolveComment is idempotent: resolving an already resolved comment returns
// the record unchanged instead of failing.
func (s *reviewService) ResolveComment(ctx context.Context, commentID string, actor domain.Actor) (*domain.Comment, error) {
	comment, err := s.reviewRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actor.UserID && !actor.Role.IsReviewer() {
		return nil, apperrors.ErrForbidden
	}
	if comment.IsResolved {
		return comment, nil
	}

	now := time.Now().UTC()
	entry := auditlog.NewEntry(domain.EntityComment, commentID, domain.ActionUpdate, actor).
		WithChange("isResolved", false, true).
		At(now).
		Build()

	if err := s.reviewRepo.ResolveComment(ctx, commentID, actor.UserID, now, entry); err != nil {
		s.LogError(ctx, err, "failed to resolve comment", "comment_id", commentID)
		return nil, err
	}
	comment.IsResolved = true
	comment.LastUpdatedAt = now
	comment.LastUpdatedBy = actor.UserID
	return comment, nil
}

func (s *reviewService) ListComments(ctx context.Context, applicationID string, actor domain.Actor) ([]domain.Comment, error) {
	includeInternal := actor.Role.IsReviewer()
	return s.reviewRepo.FindCommentsByApplicationID(ctx, applicationID, includeInternal)
}

func (s *reviewService) CreateReview(ctx context.Context, applicationID string, req dto.CreateReviewRequest, actor domain.Actor) (*domain.Review, error) {
	if err := s.RequireReviewer(actor); err != nil {
		return nil, err
	}
	stage := domain.ReviewStage(req.Stage)
	switch stage {
	case domain.StageEligibility, domain.StageFinal:
	default:
		return nil, apperrors.NewValidationError("unknown review stage " + req.Stage)
	}
	decision := domain.ReviewDecision(req.Decision)
	switch decision {
	case domain.DecisionApproved, domain.DecisionRejected, domain.DecisionNeedsClarification:
	default:
		return nil, apperrors.NewValidationError("unknown review decision " + req.Decision)
	}
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := domain.Review{
		ReviewID:      uuid.NewString(),
		ApplicationID: applicationID,
		Stage:         stage,
		Decision:      decision,
		Flags: domain.ReviewFlags{
			EligibilityVerified: req.EligibilityVerified,
			DocumentsVerified:   req.DocumentsVerified,
			MedicalValidity:     req.MedicalValidity,
			ExpensesVerified:    req.ExpensesVerified,
		},
		Remarks:     req.Remarks,
		AuditFields: newAuditFields(actor.UserID, now),
	}

	entry := auditlog.NewEntry(domain.EntityReview, review.ReviewID, domain.ActionCreate, actor).
		WithDetail("applicationID", applicationID).
		WithDetail("stage", string(stage)).
		WithDetail("decision", string(decision)).
		At(now).
		Build()

	if err := s.reviewRepo.SaveReview(ctx, review, entry); err != nil {
		s.LogError(ctx, err, "failed to save review", "application_id", applicationID)
		return nil, err
	}
	return &review, nil
}

func (s *reviewService) Summarize(ctx context.Context, applicationID string) (*domain.ReviewSummary, error) {
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}

	summary := &domain.ReviewSummary{ApplicationID: applicationID}

	latest, err := s.reviewRepo.FindLatestEligibilityCheck(ctx, applicationID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	summary.LatestEligibility = latest

	docs, err := s.docRepo.FindDocumentsByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	summary.DocumentsTotal = len(docs)

	docReviews, err := s.reviewRepo.FindDocumentReviewsByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	summary.DocumentsVerified = countVerifiedDocuments(docReviews)

	comments, err := s.reviewRepo.FindCommentsByApplicationID(ctx, applicationID, true)
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		if !comment.IsResolved {
			summary.UnresolvedComments++
		}
	}

	reviews, err := s.reviewRepo.FindReviewsByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if len(reviews) > 0 {
		stage := reviews[0].Stage
		decision := reviews[0].Decision
		summary.LatestStage = &stage
		summary.LatestDecision = &decision
	}
	for _, review := range reviews {
		if review.Stage == domain.StageFinal {
			decision := review.Decision
			summary.FinalDecision = &decision
			break
		}
	}

	summary.CompletionPercentage = completionPercentage(summary)
	summary.OverallStatus = overallStatus(summary)
	return summary, nil
}

// countVerifiedDocuments counts documents whose most recent review pass came
// back approved. Reviews arrive newest first.
func countVerifiedDocuments(reviews []domain.DocumentReview) int {
	latest := map[string]domain.VerificationStatus{}
	for _, review := range reviews {
		if _, seen := latest[review.DocumentID]; !seen {
			latest[review.DocumentID] = review.VerificationStatus
		}
	}
	verified := 0
	for _, status := range latest {
		if status == domain.VerificationApproved {
			verified++
		}
	}
	return verified
}

// completionPercentage weighs the three review gates: eligibility recorded,
// all documents verified, final decision on record.
func completionPercentage(summary *domain.ReviewSummary) int {
	progress := 0
	if summary.LatestEligibility != nil {
		progress += 33
	}
	if summary.DocumentsTotal > 0 && summary.DocumentsVerified == summary.DocumentsTotal {
		progress += 33
	}
	if summary.FinalDecision != nil {
		progress += 34
	}
	return progress
}

func overallStatus(summary *domain.ReviewSummary) string {
	switch {
	case summary.CompletionPercentage == 0:
		return "NOT_STARTED"
	case summary.CompletionPercentage == 100 && summary.UnresolvedComments == 0:
		return "COMPLETE"
	default:
		return "IN_PROGRESS"
	}
}

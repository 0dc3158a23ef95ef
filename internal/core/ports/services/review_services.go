package services

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/claimpilot/claims_management_app/internal/dto"
)

// ReviewSvcFacade is the review engine surface: eligibility passes, per-document
// verification, comment threads and stage decisions, plus the aggregated summary.
type ReviewSvcFacade interface {
	// PerformEligibilityCheck records one eligibility pass. A failed identity
	// gate forces the derived status to NOT_ELIGIBLE regardless of the request.
	PerformEligibilityCheck(ctx context.Context, applicationID string, req dto.PerformEligibilityCheckRequest, actor domain.Actor) (*domain.EligibilityCheck, error)

	// ReviewDocument records one verification pass over an uploaded document.
	ReviewDocument(ctx context.Context, applicationID, documentID string, req dto.ReviewDocumentRequest, actor domain.Actor) (*domain.DocumentReview, error)

	// AddComment attaches a threaded note to the application.
	AddComment(ctx context.Context, applicationID string, req dto.CreateCommentRequest, actor domain.Actor) (*domain.Comment, error)

	// ResolveComment marks a comment resolved. Resolving an already resolved
	// comment is a no-op returning the record unchanged.
	ResolveComment(ctx context.Context, commentID string, actor domain.Actor) (*domain.Comment, error)

	// ListComments returns the comment thread of an application.
	ListComments(ctx context.Context, applicationID string, actor domain.Actor) ([]domain.Comment, error)

	// CreateReview records a stage-scoped decision.
	CreateReview(ctx context.Context, applicationID string, req dto.CreateReviewRequest, actor domain.Actor) (*domain.Review, error)

	// Summarize aggregates the review sub-records into the read model consumed
	// by reporting and by the state machine's guard.
	Summarize(ctx context.Context, applicationID string) (*domain.ReviewSummary, error)
}

package repositories

import (
	"context"
	"time"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
)

// ReviewReader defines read operations for the review sub-records of an
// application: eligibility checks, document reviews, comments and stage reviews.
type ReviewReader interface {
	// FindLatestEligibilityCheck returns the most recent eligibility pass, or
	// apperrors.ErrNotFound when none exists.
	FindLatestEligibilityCheck(ctx context.Context, applicationID string) (*domain.EligibilityCheck, error)

	// FindEligibilityChecksByApplicationID returns all passes, newest first.
	FindEligibilityChecksByApplicationID(ctx context.Context, applicationID string) ([]domain.EligibilityCheck, error)

	// FindDocumentReviewsByApplicationID returns the document review passes of
	// one application.
	FindDocumentReviewsByApplicationID(ctx context.Context, applicationID string) ([]domain.DocumentReview, error)

	// FindCommentByID retrieves a single comment.
	FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)

	// FindCommentsByApplicationID returns comments oldest first. When
	// includeInternal is false, internal notes are filtered out.
	FindCommentsByApplicationID(ctx context.Context, applicationID string, includeInternal bool) ([]domain.Comment, error)

	// FindReviewsByApplicationID returns all stage reviews, newest first.
	FindReviewsByApplicationID(ctx context.Context, applicationID string) ([]domain.Review, error)

	// FindLatestReviewByStage returns the most recent review of the given stage,
	// or apperrors.ErrNotFound when none exists.
	FindLatestReviewByStage(ctx context.Context, applicationID string, stage domain.ReviewStage) (*domain.Review, error)
}

// ReviewWriter defines write operations for review sub-records. All records are
// historical: nothing here is ever deleted, and only comment resolution mutates
// an existing row.
type ReviewWriter interface {
	// SaveEligibilityCheck persists one eligibility pass with its audit entry.
	SaveEligibilityCheck(ctx context.Context, check domain.EligibilityCheck, entry domain.AuditLogEntry) error

	// SaveDocumentReview persists one document review pass with its audit entry.
	SaveDocumentReview(ctx context.Context, review domain.DocumentReview, entry domain.AuditLogEntry) error

	// SaveComment persists a comment with its audit entry.
	SaveComment(ctx context.Context, comment domain.Comment, entry domain.AuditLogEntry) error

	// ResolveComment flips the resolved flag on. The transition is one-way.
	ResolveComment(ctx context.Context, commentID string, resolvedBy string, resolvedAt time.Time, entry domain.AuditLogEntry) error

	// SaveReview persists a stage decision record with its audit entry.
	SaveReview(ctx context.Context, review domain.Review, entry domain.AuditLogEntry) error
}

// ReviewRepositoryFacade combines all review repository interfaces.
type ReviewRepositoryFacade interface {
	ReviewReader
	ReviewWriter
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
)

type ReviewRepository struct {
	provider *Provider
}

func newReviewRepository(provider *Provider) portsrepo.ReviewRepositoryFacade {
	return &ReviewRepository{provider: provider}
}

var _ portsrepo.ReviewRepositoryFacade = (*ReviewRepository)(nil)

func (r *ReviewRepository) FindLatestEligibilityCheck(ctx context.Context, applicationID string) (*domain.EligibilityCheck, error) {
	checks, err := r.FindEligibilityChecksByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if len(checks) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &checks[0], nil
}

func (r *ReviewRepository) FindEligibilityChecksByApplicationID(ctx context.Context, applicationID string) ([]domain.EligibilityCheck, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	checks := []domain.EligibilityCheck{}
	for _, check := range s.eligibility {
		if check.ApplicationID == applicationID {
			checks = append(checks, check)
		}
	}
	sort.Slice(checks, func(i, j int) bool { return checks[i].CreatedAt.After(checks[j].CreatedAt) })
	return checks, nil
}

func (r *ReviewRepository) SaveEligibilityCheck(ctx context.Context, check domain.EligibilityCheck, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.eligibility[check.CheckID]; exists {
		return apperrors.ErrDuplicate
	}
	s.eligibility[check.CheckID] = check
	s.appendAudit(entry)
	return nil
}

func (r *ReviewRepository) FindDocumentReviewsByApplicationID(ctx context.Context, applicationID string) ([]domain.DocumentReview, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := []domain.DocumentReview{}
	for _, review := range s.docReviews {
		if review.ApplicationID == applicationID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

func (r *ReviewRepository) SaveDocumentReview(ctx context.Context, review domain.DocumentReview, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docReviews[review.ReviewID]; exists {
		return apperrors.ErrDuplicate
	}
	s.docReviews[review.ReviewID] = review
	s.appendAudit(entry)
	return nil
}

func (r *ReviewRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[commentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &comment, nil
}

func (r *ReviewRepository) FindCommentsByApplicationID(ctx context.Context, applicationID string, includeInternal bool) ([]domain.Comment, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := []domain.Comment{}
	for _, comment := range s.comments {
		if comment.ApplicationID != applicationID {
			continue
		}
		if comment.IsInternal && !includeInternal {
			continue
		}
		comments = append(comments, comment)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments, nil
}

func (r *ReviewRepository) SaveComment(ctx context.Context, comment domain.Comment, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.comments[comment.CommentID]; exists {
		return apperrors.ErrDuplicate
	}
	s.comments[comment.CommentID] = comment
	s.appendAudit(entry)
	return nil
}

func (r *ReviewRepository) ResolveComment(ctx context.Context, commentID string, resolvedBy string, resolvedAt time.Time, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[commentID]
	if !ok {
		return apperrors.NewNotFoundError("comment " + commentID + " not found")
	}
	comment.IsResolved = true
	comment.LastUpdatedAt = resolvedAt
	comment.LastUpdatedBy = resolvedBy
	s.comments[commentID] = comment
	s.appendAudit(entry)
	return nil
}

func (r *ReviewRepository) FindReviewsByApplicationID(ctx context.Context, applicationID string) ([]domain.Review, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := []domain.Review{}
	for _, review := range s.reviews {
		if review.ApplicationID == applicationID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

func (r *ReviewRepository) FindLatestReviewByStage(ctx context.Context, applicationID string, stage domain.ReviewStage) (*domain.Review, error) {
	reviews, err := r.FindReviewsByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	for _, review := range reviews {
		if review.Stage == stage {
			return &review, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *ReviewRepository) SaveReview(ctx context.Context, review domain.Review, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reviews[review.ReviewID]; exists {
		return apperrors.ErrDuplicate
	}
	s.reviews[review.ReviewID] = review
	s.appendAudit(entry)
	return nil
}

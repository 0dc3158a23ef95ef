package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
)

type ReviewRepository struct {
	BaseRepository
}

func newReviewRepository(provider *Provider) portsrepo.ReviewRepositoryFacade {
	return &ReviewRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.ReviewRepositoryFacade = (*ReviewRepository)(nil)

const selectEligibilityColumns = `
	SELECT check_id, application_id, category_proof_valid, employee_id_verified, medical_card_valid,
	       relationship_verified, within_claim_limit, treatment_covered,
	       prior_permission, eligibility_status, reasons, conditions,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM eligibility_checks
`

func scanEligibilityCheck(row rowScanner) (*models.EligibilityCheck, error) {
	var m models.EligibilityCheck
	err := row.Scan(
		&m.CheckID,
		&m.ApplicationID,
		&m.CategoryProofValid,
		&m.EmployeeIDVerified,
		&m.MedicalCardValid,
		&m.RelationshipVerified,
		&m.WithinClaimLimit,
		&m.TreatmentCovered,
		&m.PriorPermission,
		&m.EligibilityStatus,
		&m.ReasonsJSON,
		&m.ConditionsJSON,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ReviewRepository) FindLatestEligibilityCheck(ctx context.Context, applicationID string) (*domain.EligibilityCheck, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectEligibilityColumns + ` WHERE application_id = ? ORDER BY created_at DESC LIMIT 1;`
	m, err := scanEligibilityCheck(db.QueryRowContext(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest eligibility check of application "+applicationID, err)
	}
	check := mapping.ToDomainEligibilityCheck(*m)
	return &check, nil
}

func (r *ReviewRepository) FindEligibilityChecksByApplicationID(ctx context.Context, applicationID string) ([]domain.EligibilityCheck, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectEligibilityColumns + ` WHERE application_id = ? ORDER BY created_at DESC;`
	rows, err := db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query eligibility checks of application "+applicationID, err)
	}
	defer rows.Close()

	checks := []models.EligibilityCheck{}
	for rows.Next() {
		m, err := scanEligibilityCheck(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan eligibility check row", err)
		}
		checks = append(checks, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating eligibility check rows", err)
	}
	return mapping.ToDomainEligibilityCheckSlice(checks), nil
}

func (r *ReviewRepository) SaveEligibilityCheck(ctx context.Context, check domain.EligibilityCheck, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelEligibilityCheck(check)
	query := `
		INSERT INTO eligibility_checks (check_id, application_id, category_proof_valid, employee_id_verified,
			medical_card_valid, relationship_verified, within_claim_limit, treatment_covered,
			prior_permission, eligibility_status, reasons, conditions,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, query,
		m.CheckID,
		m.ApplicationID,
		m.CategoryProofValid,
		m.EmployeeIDVerified,
		m.MedicalCardValid,
		m.RelationshipVerified,
		m.WithinClaimLimit,
		m.TreatmentCovered,
		m.PriorPermission,
		m.EligibilityStatus,
		m.ReasonsJSON,
		m.ConditionsJSON,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert eligibility check "+m.CheckID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}

const selectDocumentReviewColumns = `
	SELECT review_id, application_id, document_id, is_verified, is_complete, is_legible,
	       remarks, verification_status,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM document_reviews
`

func scanDocumentReview(row rowScanner) (*models.DocumentReview, error) {
	var m models.DocumentReview
	err := row.Scan(
		&m.ReviewID,
		&m.ApplicationID,
		&m.DocumentID,
		&m.IsVerified,
		&m.IsComplete,
		&m.IsLegible,
		&m.Remarks,
		&m.VerificationStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ReviewRepository) FindDocumentReviewsByApplicationID(ctx context.Context, applicationID string) ([]domain.DocumentReview, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectDocumentReviewColumns + ` WHERE application_id = ? ORDER BY created_at DESC;`
	rows, err := db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query document reviews of application "+applicationID, err)
	}
	defer rows.Close()

	reviews := []models.DocumentReview{}
	for rows.Next() {
		m, err := scanDocumentReview(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document review row", err)
		}
		reviews = append(reviews, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document review rows", err)
	}
	return mapping.ToDomainDocumentReviewSlice(reviews), nil
}

func (r *ReviewRepository) SaveDocumentReview(ctx context.Context, review domain.DocumentReview, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelDocumentReview(review)
	query := `
		INSERT INTO document_reviews (review_id, application_id, document_id, is_verified, is_complete,
			is_legible, remarks, verification_status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, query,
		m.ReviewID,
		m.ApplicationID,
		m.DocumentID,
		m.IsVerified,
		m.IsComplete,
		m.IsLegible,
		m.Remarks,
		m.VerificationStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document review "+m.ReviewID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}

const selectCommentColumns = `
	SELECT comment_id, application_id, author_id, author_role, comment_text, comment_type,
	       is_internal, is_resolved,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM comments
`

func scanComment(row rowScanner) (*models.Comment, error) {
	var m models.Comment
	err := row.Scan(
		&m.CommentID,
		&m.ApplicationID,
		&m.AuthorID,
		&m.AuthorRole,
		&m.CommentText,
		&m.CommentType,
		&m.IsInternal,
		&m.IsResolved,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ReviewRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectCommentColumns + ` WHERE comment_id = ?;`
	m, err := scanComment(db.QueryRowContext(ctx, query, commentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find comment "+commentID, err)
	}
	comment := mapping.ToDomainComment(*m)
	return &comment, nil
}

func (r *ReviewRepository) FindCommentsByApplicationID(ctx context.Context, applicationID string, includeInternal bool) ([]domain.Comment, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectCommentColumns + ` WHERE application_id = ?`
	if !includeInternal {
		query += ` AND is_internal = 0`
	}
	query += ` ORDER BY created_at ASC;`

	rows, err := db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query comments of application "+applicationID, err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		m, err := scanComment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan comment row", err)
		}
		comments = append(comments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating comment rows", err)
	}
	return mapping.ToDomainCommentSlice(comments), nil
}

func (r *ReviewRepository) SaveComment(ctx context.Context, comment domain.Comment, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelComment(comment)
	query := `
		INSERT INTO comments (comment_id, application_id, author_id, author_role, comment_text,
			comment_type, is_internal, is_resolved,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, query,
		m.CommentID,
		m.ApplicationID,
		m.AuthorID,
		m.AuthorRole,
		m.CommentText,
		m.CommentType,
		m.IsInternal,
		m.IsResolved,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert comment "+m.CommentID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}

func (r *ReviewRepository) ResolveComment(ctx context.Context, commentID string, resolvedBy string, resolvedAt time.Time, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	query := `
		UPDATE comments
		SET is_resolved = 1, last_updated_at = ?, last_updated_by = ?
		WHERE comment_id = ?;
	`
	result, err := tx.ExecContext(ctx, query, resolvedAt, resolvedBy, commentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to resolve comment "+commentID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("comment " + commentID + " not found")
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}

const selectReviewColumns = `
	SELECT review_id, application_id, stage, decision, eligibility_verified, documents_verified,
	       medical_validity, expenses_verified, remarks,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM reviews
`

func scanReview(row rowScanner) (*models.Review, error) {
	var m models.Review
	err := row.Scan(
		&m.ReviewID,
		&m.ApplicationID,
		&m.Stage,
		&m.Decision,
		&m.EligibilityVerified,
		&m.DocumentsVerified,
		&m.MedicalValidity,
		&m.ExpensesVerified,
		&m.Remarks,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ReviewRepository) FindReviewsByApplicationID(ctx context.Context, applicationID string) ([]domain.Review, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectReviewColumns + ` WHERE application_id = ? ORDER BY created_at DESC;`
	rows, err := db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reviews of application "+applicationID, err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		m, err := scanReview(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan review row", err)
		}
		reviews = append(reviews, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating review rows", err)
	}
	return mapping.ToDomainReviewSlice(reviews), nil
}

func (r *ReviewRepository) FindLatestReviewByStage(ctx context.Context, applicationID string, stage domain.ReviewStage) (*domain.Review, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectReviewColumns + ` WHERE application_id = ? AND stage = ? ORDER BY created_at DESC LIMIT 1;`
	m, err := scanReview(db.QueryRowContext(ctx, query, applicationID, string(stage)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest "+string(stage)+" review of application "+applicationID, err)
	}
	review := mapping.ToDomainReview(*m)
	return &review, nil
}

func (r *ReviewRepository) SaveReview(ctx context.Context, review domain.Review, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelReview(review)
	query := `
		INSERT INTO reviews (review_id, application_id, stage, decision, eligibility_verified,
			documents_verified, medical_validity, expenses_verified, remarks,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, query,
		m.ReviewID,
		m.ApplicationID,
		m.Stage,
		m.Decision,
		m.EligibilityVerified,
		m.DocumentsVerified,
		m.MedicalValidity,
		m.ExpensesVerified,
		m.Remarks,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert review "+m.ReviewID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}

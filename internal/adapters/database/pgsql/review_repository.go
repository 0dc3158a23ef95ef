package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxReviewRepository struct {
	BaseRepository
}

func newPgxReviewRepository(provider *Provider) portsrepo.ReviewRepositoryFacade {
	return &PgxReviewRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.ReviewRepositoryFacade = (*PgxReviewRepository)(nil)

const selectEligibilityColumns = `
	SELECT check_id, application_id, category_proof_valid, employee_id_verified, medical_card_valid,
	       relationship_verified, within_claim_limit, treatment_covered,
	       prior_permission, eligibility_status, reasons, conditions,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM eligibility_checks
`

func scanEligibilityCheck(row pgx.Row) (*models.EligibilityCheck, error) {
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

func (r *PgxReviewRepository) FindLatestEligibilityCheck(ctx context.Context, applicationID string) (*domain.EligibilityCheck, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectEligibilityColumns + ` WHERE application_id = $1 ORDER BY created_at DESC LIMIT 1;`
	m, err := scanEligibilityCheck(pool.QueryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest eligibility check of application "+applicationID, err)
	}
	check := mapping.ToDomainEligibilityCheck(*m)
	return &check, nil
}

func (r *PgxReviewRepository) FindEligibilityChecksByApplicationID(ctx context.Context, applicationID string) ([]domain.EligibilityCheck, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectEligibilityColumns + ` WHERE application_id = $1 ORDER BY created_at DESC;`
	rows, err := pool.Query(ctx, query, applicationID)
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

func (r *PgxReviewRepository) SaveEligibilityCheck(ctx context.Context, check domain.EligibilityCheck, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEligibilityCheck(check)
	query := `
		INSERT INTO eligibility_checks (check_id, application_id, category_proof_valid, employee_id_verified,
			medical_card_valid, relationship_verified, within_claim_limit, treatment_covered,
			prior_permission, eligibility_status, reasons, conditions,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
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
	return r.Commit(ctx, tx)
}

const selectDocumentReviewColumns = `
	SELECT review_id, application_id, document_id, is_verified, is_complete, is_legible,
	       remarks, verification_status,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM document_reviews
`

func scanDocumentReview(row pgx.Row) (*models.DocumentReview, error) {
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

func (r *PgxReviewRepository) FindDocumentReviewsByApplicationID(ctx context.Context, applicationID string) ([]domain.DocumentReview, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectDocumentReviewColumns + ` WHERE application_id = $1 ORDER BY created_at DESC;`
	rows, err := pool.Query(ctx, query, applicationID)
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

func (r *PgxReviewRepository) SaveDocumentReview(ctx context.Context, review domain.DocumentReview, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDocumentReview(review)
	query := `
		INSERT INTO document_reviews (review_id, application_id, document_id, is_verified, is_complete,
			is_legible, remarks, verification_status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
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
	return r.Commit(ctx, tx)
}

const selectCommentColumns = `
	SELECT comment_id, application_id, author_id, author_role, comment_text, comment_type,
	       is_internal, is_resolved,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM comments
`

func scanComment(row pgx.Row) (*models.Comment, error) {
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

func (r *PgxReviewRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectCommentColumns + ` WHERE comment_id = $1;`
	m, err := scanComment(pool.QueryRow(ctx, query, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find comment "+commentID, err)
	}
	comment := mapping.ToDomainComment(*m)
	return &comment, nil
}

func (r *PgxReviewRepository) FindCommentsByApplicationID(ctx context.Context, applicationID string, includeInternal bool) ([]domain.Comment, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectCommentColumns + ` WHERE application_id = $1`
	if !includeInternal {
		query += ` AND is_internal = FALSE`
	}
	query += ` ORDER BY created_at ASC;`

	rows, err := pool.Query(ctx, query, applicationID)
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

func (r *PgxReviewRepository) SaveComment(ctx context.Context, comment domain.Comment, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelComment(comment)
	query := `
		INSERT INTO comments (comment_id, application_id, author_id, author_role, comment_text,
			comment_type, is_internal, is_resolved,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
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
	return r.Commit(ctx, tx)
}

func (r *PgxReviewRepository) ResolveComment(ctx context.Context, commentID string, resolvedBy string, resolvedAt time.Time, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE comments
		SET is_resolved = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE comment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, commentID, resolvedAt, resolvedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to resolve comment "+commentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("comment " + commentID + " not found")
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

const selectReviewColumns = `
	SELECT review_id, application_id, stage, decision, eligibility_verified, documents_verified,
	       medical_validity, expenses_verified, remarks,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM reviews
`

func scanReview(row pgx.Row) (*models.Review, error) {
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

func (r *PgxReviewRepository) FindReviewsByApplicationID(ctx context.Context, applicationID string) ([]domain.Review, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectReviewColumns + ` WHERE application_id = $1 ORDER BY created_at DESC;`
	rows, err := pool.Query(ctx, query, applicationID)
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

func (r *PgxReviewRepository) FindLatestReviewByStage(ctx context.Context, applicationID string, stage domain.ReviewStage) (*domain.Review, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectReviewColumns + ` WHERE application_id = $1 AND stage = $2 ORDER BY created_at DESC LIMIT 1;`
	m, err := scanReview(pool.QueryRow(ctx, query, applicationID, string(stage)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest "+string(stage)+" review of application "+applicationID, err)
	}
	review := mapping.ToDomainReview(*m)
	return &review, nil
}

func (r *PgxReviewRepository) SaveReview(ctx context.Context, review domain.Review, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelReview(review)
	query := `
		INSERT INTO reviews (review_id, application_id, stage, decision, eligibility_verified,
			documents_verified, medical_validity, expenses_verified, remarks,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
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
	return r.Commit(ctx, tx)
}

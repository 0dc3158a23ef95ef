package pgsql

import (
	"context"
	"errors"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(provider *Provider) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const selectDocumentColumns = `
	SELECT document_id, application_id, document_type, file_name, content_type, size_bytes, storage_key,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM application_documents
`

func scanDocument(row pgx.Row) (*models.ApplicationDocument, error) {
	var m models.ApplicationDocument
	err := row.Scan(
		&m.DocumentID,
		&m.ApplicationID,
		&m.DocumentType,
		&m.FileName,
		&m.ContentType,
		&m.SizeBytes,
		&m.StorageKey,
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

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.ApplicationDocument, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectDocumentColumns + ` WHERE document_id = $1;`
	m, err := scanDocument(pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+documentID, err)
	}
	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

func (r *PgxDocumentRepository) FindDocumentsByApplicationID(ctx context.Context, applicationID string) ([]domain.ApplicationDocument, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectDocumentColumns + ` WHERE application_id = $1 ORDER BY created_at ASC;`
	rows, err := pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents of application "+applicationID, err)
	}
	defer rows.Close()

	docs := []models.ApplicationDocument{}
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		docs = append(docs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}
	return mapping.ToDomainDocumentSlice(docs), nil
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.ApplicationDocument, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO application_documents (document_id, application_id, document_type, file_name, content_type,
			size_bytes, storage_key, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.DocumentID,
		m.ApplicationID,
		m.DocumentType,
		m.FileName,
		m.ContentType,
		m.SizeBytes,
		m.StorageKey,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM application_documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return r.Commit(ctx, tx)
}

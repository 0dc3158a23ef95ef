package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
)

type DocumentRepository struct {
	BaseRepository
}

func newDocumentRepository(provider *Provider) portsrepo.DocumentRepositoryFacade {
	return &DocumentRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.DocumentRepositoryFacade = (*DocumentRepository)(nil)

const selectDocumentColumns = `
	SELECT document_id, application_id, document_type, file_name, content_type, size_bytes, storage_key,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM application_documents
`

func scanDocument(row rowScanner) (*models.ApplicationDocument, error) {
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

func (r *DocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.ApplicationDocument, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectDocumentColumns + ` WHERE document_id = ?;`
	m, err := scanDocument(db.QueryRowContext(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+documentID, err)
	}
	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

func (r *DocumentRepository) FindDocumentsByApplicationID(ctx context.Context, applicationID string) ([]domain.ApplicationDocument, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectDocumentColumns + ` WHERE application_id = ? ORDER BY created_at ASC;`
	rows, err := db.QueryContext(ctx, query, applicationID)
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

func (r *DocumentRepository) SaveDocument(ctx context.Context, doc domain.ApplicationDocument, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO application_documents (document_id, application_id, document_type, file_name, content_type,
			size_bytes, storage_key, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, query,
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
	return r.Commit(tx)
}

func (r *DocumentRepository) DeleteDocument(ctx context.Context, documentID string, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM application_documents WHERE document_id = ?;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return r.Commit(tx)
}

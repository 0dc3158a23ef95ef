package repositories

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
)

// DocumentReader defines read operations for application documents.
type DocumentReader interface {
	// FindDocumentByID retrieves a single document record.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.ApplicationDocument, error)

	// FindDocumentsByApplicationID retrieves all documents of one application.
	FindDocumentsByApplicationID(ctx context.Context, applicationID string) ([]domain.ApplicationDocument, error)
}

// DocumentWriter defines write operations for application documents.
type DocumentWriter interface {
	// SaveDocument persists a document metadata record with its audit entry.
	SaveDocument(ctx context.Context, doc domain.ApplicationDocument, entry domain.AuditLogEntry) error

	// DeleteDocument removes a document record; the audit entry is written first.
	DeleteDocument(ctx context.Context, documentID string, entry domain.AuditLogEntry) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

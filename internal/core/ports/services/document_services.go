package services

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/claimpilot/claims_management_app/internal/dto"
)

// DocumentSvcFacade manages the metadata of uploaded claim documents.
type DocumentSvcFacade interface {
	// AttachDocument registers an uploaded file against an application.
	AttachDocument(ctx context.Context, applicationID string, req dto.AttachDocumentRequest, actor domain.Actor) (*domain.ApplicationDocument, error)

	// ListDocuments returns the documents of an application.
	ListDocuments(ctx context.Context, applicationID string) ([]domain.ApplicationDocument, error)

	// DeleteDocument removes a document record. Owners may delete only while the
	// application is pre-review; reviewers may delete at any status.
	DeleteDocument(ctx context.Context, documentID string, actor domain.Actor) error
}

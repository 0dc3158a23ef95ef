package services

import (
	"context"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/utils/auditlog"
	"github.com/google/uuid"
)

// documentService manages document metadata records. The files themselves live
// behind the opaque StorageKey and are never touched here.
type documentService struct {
	BaseService
	docRepo portsrepo.DocumentRepositoryFacade
	appRepo portsrepo.ApplicationReader
}

func NewDocumentService(docRepo portsrepo.DocumentRepositoryFacade, appRepo portsrepo.ApplicationReader) portssvc.DocumentSvcFacade {
	return &documentService{docRepo: docRepo, appRepo: appRepo}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) AttachDocument(ctx context.Context, applicationID string, req dto.AttachDocumentRequest, actor domain.Actor) (*domain.ApplicationDocument, error) {
	docType := domain.DocumentType(req.DocumentType)
	switch docType {
	case domain.DocPrescription, domain.DocBill, domain.DocReceipt, domain.DocDischarge, domain.DocCertificate, domain.DocOther:
	default:
		return nil, apperrors.NewValidationError("unknown document type " + req.DocumentType)
	}
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := domain.ApplicationDocument{
		DocumentID:    uuid.NewString(),
		ApplicationID: applicationID,
		DocumentType:  docType,
		FileName:      req.FileName,
		ContentType:   req.ContentType,
		SizeBytes:     req.SizeBytes,
		StorageKey:    req.StorageKey,
		AuditFields:   newAuditFields(actor.UserID, now),
	}

	entry := auditlog.NewEntry(domain.EntityDocument, doc.DocumentID, domain.ActionCreate, actor).
		WithDetail("applicationID", applicationID).
		WithDetail("documentType", string(docType)).
		WithDetail("fileName", req.FileName).
		At(now).
		Build()

	if err := s.docRepo.SaveDocument(ctx, doc, entry); err != nil {
		s.LogError(ctx, err, "failed to save document", "application_id", applicationID)
		return nil, err
	}
	return &doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, applicationID string) ([]domain.ApplicationDocument, error) {
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.docRepo.FindDocumentsByApplicationID(ctx, applicationID)
}

func (s *documentService) DeleteDocument(ctx context.Context, documentID string, actor domain.Actor) error {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}
	app, err := s.appRepo.FindApplicationByID(ctx, doc.ApplicationID)
	if err != nil {
		return err
	}
	if !actor.Role.IsReviewer() {
		if app.CreatedBy != actor.UserID {
			return apperrors.ErrForbidden
		}
		if app.Status != domain.StatusPending {
			return apperrors.NewAppError(422, "documents can only be removed while the application is pending", apperrors.ErrTransitionNotPermitted)
		}
	}

	now := time.Now().UTC()
	entry := auditlog.NewEntry(domain.EntityDocument, documentID, domain.ActionDelete, actor).
		WithDetail("applicationID", doc.ApplicationID).
		WithDetail("fileName", doc.FileName).
		At(now).
		Build()

	if err := s.docRepo.DeleteDocument(ctx, documentID, entry); err != nil {
		s.LogError(ctx, err, "failed to delete document", "document_id", documentID)
		return err
	}
	return nil
}

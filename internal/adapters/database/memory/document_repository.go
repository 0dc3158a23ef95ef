package memory

import (
	"context"
	"sort"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
)

type DocumentRepository struct {
	provider *Provider
}

func newDocumentRepository(provider *Provider) portsrepo.DocumentRepositoryFacade {
	return &DocumentRepository{provider: provider}
}

var _ portsrepo.DocumentRepositoryFacade = (*DocumentRepository)(nil)

func (r *DocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.ApplicationDocument, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &doc, nil
}

func (r *DocumentRepository) FindDocumentsByApplicationID(ctx context.Context, applicationID string) ([]domain.ApplicationDocument, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := []domain.ApplicationDocument{}
	for _, doc := range s.documents {
		if doc.ApplicationID == applicationID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.Before(docs[j].CreatedAt) })
	return docs, nil
}

func (r *DocumentRepository) SaveDocument(ctx context.Context, doc domain.ApplicationDocument, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[doc.DocumentID]; exists {
		return apperrors.ErrDuplicate
	}
	s.documents[doc.DocumentID] = doc
	s.appendAudit(entry)
	return nil
}

func (r *DocumentRepository) DeleteDocument(ctx context.Context, documentID string, entry domain.AuditLogEntry) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[documentID]; !ok {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	s.appendAudit(entry)
	delete(s.documents, documentID)
	return nil
}

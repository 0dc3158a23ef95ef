package services

import (
	"context"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
)

const defaultAuditPageSize = 50

// auditService exposes read-only queries over the audit trail. Writes happen
// inside the mutating operations of the other services, never here.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditReader
}

func NewAuditService(auditRepo portsrepo.AuditReader) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) QueryByEntity(ctx context.Context, entityType, entityID string, actor domain.Actor) ([]domain.AuditLogEntry, error) {
	if err := s.RequireReviewer(actor); err != nil {
		return nil, err
	}
	if entityType == "" || entityID == "" {
		return nil, apperrors.NewValidationError("entity type and entity id are required")
	}
	return s.auditRepo.FindByEntity(ctx, entityType, entityID)
}

func (s *auditService) QueryByDateRange(ctx context.Context, start, end time.Time, limit int, nextToken *string, actor domain.Actor) ([]domain.AuditLogEntry, *string, error) {
	if err := s.RequireReviewer(actor); err != nil {
		return nil, nil, err
	}
	if end.Before(start) {
		return nil, nil, apperrors.NewValidationError("end of range is before its start")
	}
	if limit <= 0 {
		limit = defaultAuditPageSize
	}
	return s.auditRepo.FindByDateRange(ctx, start, end, limit, nextToken)
}

package services

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/dto"
)

// ApplicationSvcFacade is the claim lifecycle surface exposed to the transport layer.
type ApplicationSvcFacade interface {
	// SubmitApplication creates a claim with its expense items as one unit and
	// returns the persisted application.
	SubmitApplication(ctx context.Context, req dto.SubmitApplicationRequest, actor domain.Actor) (*domain.Application, error)

	// GetApplication retrieves one claim.
	GetApplication(ctx context.Context, applicationID string) (*domain.Application, error)

	// ListApplications retrieves a filtered, sorted page of claims and the total
	// number of matches.
	ListApplications(ctx context.Context, filter portsrepo.ApplicationListFilter) ([]domain.Application, int64, error)

	// UpdateStatus requests one state-machine transition, guarded by the latest
	// final-stage review decision and an optimistic staleness check.
	UpdateStatus(ctx context.Context, applicationID string, req dto.UpdateStatusRequest, actor domain.Actor) (*domain.Application, error)

	// DeleteApplication removes a claim: owners may delete while pending, admins
	// at any status.
	DeleteApplication(ctx context.Context, applicationID string, actor domain.Actor) error
}

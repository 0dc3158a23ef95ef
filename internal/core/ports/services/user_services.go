package services

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/claimpilot/claims_management_app/internal/dto"
)

// UserSvcFacade manages the users known to the claim workflow.
type UserSvcFacade interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error)

	// GetUser retrieves a single user.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a page of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// Authenticate verifies email/password credentials and returns the user.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

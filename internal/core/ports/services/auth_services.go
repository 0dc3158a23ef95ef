package services

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/dto"
)

// AuthSvcFacade issues and refreshes access tokens for authenticated users.
type AuthSvcFacade interface {
	// Login authenticates credentials and issues tokens.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

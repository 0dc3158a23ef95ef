package services

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/platform/config"
	"github.com/claimpilot/claims_management_app/internal/utils"
)

// authService issues JWT pairs on top of the user service's credential check.
type authService struct {
	BaseService
	cfg     *config.Config
	userSvc portssvc.UserSvcFacade
}

func NewAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userSvc: userSvc}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userSvc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user.UserID, string(user.Role), dto.ToUserResponse(user))
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := utils.ParseAndValidateJWT(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, apperrors.NewAppError(401, "invalid refresh token", apperrors.ErrForbidden)
	}
	// Re-fetch so a deleted user or a role change invalidates the session.
	user, err := s.userSvc.GetUser(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.NewAppError(401, "invalid refresh token", apperrors.ErrForbidden)
	}
	return s.issueTokens(ctx, user.UserID, string(user.Role), dto.ToUserResponse(user))
}

func (s *authService) issueTokens(ctx context.Context, userID, role string, user dto.UserResponse) (*dto.LoginResponse, error) {
	accessToken, err := utils.GenerateJWT(userID, role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "failed to sign access token", "user_id", userID)
		return nil, err
	}
	refreshToken, err := utils.GenerateJWT(userID, role, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "failed to sign refresh token", "user_id", userID)
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

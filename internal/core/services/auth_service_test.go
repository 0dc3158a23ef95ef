package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/core/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/platform/config"
	"github.com/claimpilot/claims_management_app/internal/utils"
)

// MockUserService is a mock type for the UserSvcFacade interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite Setup ---

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserSvc *MockUserService
	cfg         *config.Config
	service     portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserSvc = new(MockUserService)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-access-secret-that-is-long-enough",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "cma-test",
		RefreshTokenSecret:         "test-refresh-secret-that-is-long-enough",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewAuthService(suite.cfg, suite.mockUserSvc)
}

func (suite *AuthServiceTestSuite) testUser() *domain.User {
	return &domain.User{
		UserID: uuid.NewString(),
		Name:   "Priya Shah",
		Email:  "priya@example.com",
		Role:   domain.RoleAccountant,
	}
}

// --- Test Cases ---

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := suite.testUser()
	req := dto.LoginRequest{Email: user.Email, Password: "correct horse battery staple"}

	suite.mockUserSvc.On("Authenticate", ctx, user.Email, req.Password).Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal(user.UserID, resp.User.UserID)

	claims, err := utils.ParseAndValidateJWT(resp.AccessToken, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
	suite.Equal(string(domain.RoleAccountant), claims.Role)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_BadCredentials() {
	ctx := context.Background()
	req := dto.LoginRequest{Email: "priya@example.com", Password: "wrong"}
	authErr := apperrors.NewAppError(401, "invalid credentials", apperrors.ErrForbidden)

	suite.mockUserSvc.On("Authenticate", ctx, req.Email, req.Password).Return(nil, authErr).Once()

	resp, err := suite.service.Login(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
}

func (suite *AuthServiceTestSuite) TestRefresh_Success() {
	ctx := context.Background()
	user := suite.testUser()
	refreshToken, err := utils.GenerateJWT(user.UserID, string(user.Role), suite.cfg.RefreshTokenSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	suite.mockUserSvc.On("GetUser", ctx, user.UserID).Return(user, nil).Once()

	resp, err := suite.service.Refresh(ctx, refreshToken)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal(user.UserID, resp.User.UserID)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRefresh_GarbageToken() {
	ctx := context.Background()

	resp, err := suite.service.Refresh(ctx, "not-a-jwt")

	suite.Require().Error(err)
	suite.Nil(resp)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "GetUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRefresh_AccessTokenRejected() {
	// A token signed with the access secret must not pass as a refresh token.
	ctx := context.Background()
	user := suite.testUser()
	accessToken, err := utils.GenerateJWT(user.UserID, string(user.Role), suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	resp, err := suite.service.Refresh(ctx, accessToken)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "GetUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRefresh_DeletedUser() {
	ctx := context.Background()
	userID := uuid.NewString()
	refreshToken, err := utils.GenerateJWT(userID, string(domain.RoleEmployee), suite.cfg.RefreshTokenSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	suite.mockUserSvc.On("GetUser", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Refresh(ctx, refreshToken)

	suite.Require().Error(err)
	suite.Nil(resp)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

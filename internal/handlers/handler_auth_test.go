package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/handlers"
	"github.com/claimpilot/claims_management_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	mockSvc *MockAuthService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockSvc = new(MockAuthService)

	cfg := &config.Config{
		JWTSecret:                  "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "cma-test",
		RefreshTokenSecret:         "refresh-secret-for-tests-only",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	services := &portssvc.ServiceContainer{Auth: suite.mockSvc}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *AuthHandlerTestSuite) postLogin(body dto.LoginRequest) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	req := dto.LoginRequest{Email: "priya@example.com", Password: "correct horse"}
	resp := &dto.LoginResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         dto.UserResponse{UserID: uuid.NewString(), Email: req.Email},
	}
	suite.mockSvc.On("Login", mock.Anything, req).Return(resp, nil).Once()

	w := suite.postLogin(req)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("access-token", got.AccessToken)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	req := dto.LoginRequest{Email: "priya@example.com", Password: "wrong"}
	authErr := apperrors.NewAppError(401, "invalid credentials", apperrors.ErrForbidden)
	suite.mockSvc.On("Login", mock.Anything, req).Return(nil, authErr).Once()

	w := suite.postLogin(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_RateLimited() {
	req := dto.LoginRequest{Email: "priya@example.com", Password: "wrong"}
	authErr := apperrors.NewAppError(401, "invalid credentials", apperrors.ErrForbidden)
	suite.mockSvc.On("Login", mock.Anything, req).Return(nil, authErr)

	// Five attempts per minute pass through; the sixth is cut off before the
	// handler runs.
	for i := 0; i < 5; i++ {
		w := suite.postLogin(req)
		suite.Equal(http.StatusUnauthorized, w.Code)
	}
	w := suite.postLogin(req)

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.Contains(w.Body.String(), "Too many requests")
	suite.mockSvc.AssertNumberOfCalls(suite.T(), "Login", 5)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

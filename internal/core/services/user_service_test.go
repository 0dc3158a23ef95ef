package services_test

import (
	"context"
	"testing"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/core/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	admin    domain.Actor
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
	suite.admin = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Ravi Iyer",
		Email:    "ravi@example.com",
		Password: "sup3r-secret",
		Role:     string(domain.RoleAccountant),
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, suite.admin)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleAccountant, user.Role)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.Equal(suite.admin.UserID, user.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_SelfRegistrationStampsOwnID() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "New Joiner",
		Email:    "joiner@example.com",
		Password: "sup3r-secret",
		Role:     string(domain.RoleEmployee),
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, domain.Actor{})

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(user.UserID, user.CreatedBy)
	suite.Equal(user.UserID, user.LastUpdatedBy)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Nobody",
		Email:    "nobody@example.com",
		Password: "sup3r-secret",
		Role:     "OVERLORD",
	}

	user, err := suite.service.CreateUser(ctx, req, suite.admin)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmailPropagates() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Twin",
		Email:    "twin@example.com",
		Password: "sup3r-secret",
		Role:     string(domain.RoleEmployee),
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, req, suite.admin)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: uuid.NewString(), Email: "ravi@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByEmail", ctx, "ravi@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "ravi@example.com", "sup3r-secret")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(stored.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: uuid.NewString(), Email: "ravi@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByEmail", ctx, "ravi@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "ravi@example.com", "wrong")

	suite.Require().Error(err)
	suite.Nil(user)

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Authenticate(ctx, "ghost@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
	suite.Equal("invalid credentials", appErr.Message)
}

func (suite *UserServiceTestSuite) TestListUsers_DefaultsPage() {
	ctx := context.Background()

	suite.mockRepo.On("ListUsers", ctx, 20, 0).Return([]domain.User{}, nil).Once()

	_, err := suite.service.ListUsers(ctx, 0, -5)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

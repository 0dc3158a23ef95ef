package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAuditRepository is a mock type for the AuditReader interface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditRepository) FindByDateRange(ctx context.Context, start, end time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, start, end, limit, nextToken)
	var entries []domain.AuditLogEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.AuditLogEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

// --- Test Suite Setup ---

type AuditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAuditRepository
	service  portssvc.AuditSvcFacade
	reviewer domain.Actor
	employee domain.Actor
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAuditRepository)
	suite.service = services.NewAuditService(suite.mockRepo)
	suite.reviewer = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleMedicalOfficer}
	suite.employee = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
}

// --- Test Cases ---

func (suite *AuditServiceTestSuite) TestQueryByEntity_Success() {
	ctx := context.Background()
	entityID := uuid.NewString()
	entries := []domain.AuditLogEntry{{EntryID: uuid.NewString(), EntityID: entityID}}

	suite.mockRepo.On("FindByEntity", ctx, domain.EntityApplication, entityID).Return(entries, nil).Once()

	got, err := suite.service.QueryByEntity(ctx, domain.EntityApplication, entityID, suite.reviewer)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestQueryByEntity_MissingIdentifiers() {
	ctx := context.Background()

	got, err := suite.service.QueryByEntity(ctx, "", "", suite.reviewer)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AuditServiceTestSuite) TestQueryByEntity_NonReviewerForbidden() {
	ctx := context.Background()

	got, err := suite.service.QueryByEntity(ctx, domain.EntityApplication, uuid.NewString(), suite.employee)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindByEntity", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestQueryByDateRange_InvertedRange() {
	ctx := context.Background()
	start := time.Now().UTC()
	end := start.Add(-time.Hour)

	entries, token, err := suite.service.QueryByDateRange(ctx, start, end, 10, nil, suite.reviewer)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.Nil(token)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AuditServiceTestSuite) TestQueryByDateRange_DefaultsLimit() {
	ctx := context.Background()
	start := time.Now().UTC().Add(-24 * time.Hour)
	end := time.Now().UTC()

	suite.mockRepo.On("FindByDateRange", ctx, start, end, 50, (*string)(nil)).Return([]domain.AuditLogEntry{}, nil, nil).Once()

	_, _, err := suite.service.QueryByDateRange(ctx, start, end, 0, nil, suite.reviewer)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

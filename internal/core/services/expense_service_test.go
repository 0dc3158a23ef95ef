package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/core/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockExpenseRepository is a mock type for the ExpenseRepositoryFacade interface
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseItemByID(ctx context.Context, expenseID string) (*domain.ExpenseItem, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseItem), args.Error(1)
}

func (m *MockExpenseRepository) FindExpenseItemsByApplicationID(ctx context.Context, applicationID string) ([]domain.ExpenseItem, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseItem), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, item, entry)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, item, entry)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockAppRepo     *MockApplicationRepository
	service         portssvc.ExpenseSvcFacade
	reviewer        domain.Actor
	employee        domain.Actor
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockAppRepo)
	suite.reviewer = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAccountant}
	suite.employee = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestAddItem_WhilePending() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusPending}

	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()
	suite.mockExpenseRepo.On("SaveExpenseItem", ctx,
		mock.AnythingOfType("domain.ExpenseItem"),
		mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	item, err := suite.service.AddItem(ctx, applicationID, dto.CreateExpenseItemRequest{
		BillNumber:    "B-9",
		BillDate:      time.Now().UTC(),
		AmountClaimed: decimal.NewFromInt(450),
	}, suite.employee)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.True(item.AmountApproved.IsZero())
	suite.Equal(applicationID, item.ApplicationID)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestAddItem_EmployeeBlockedAfterPending() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusUnderReview}

	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()

	item, err := suite.service.AddItem(ctx, applicationID, dto.CreateExpenseItemRequest{
		BillNumber:    "B-9",
		AmountClaimed: decimal.NewFromInt(450),
	}, suite.employee)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrTransitionNotPermitted)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpenseItem", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestAddItem_ReviewerMayAddAfterPending() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusUnderReview}

	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()
	suite.mockExpenseRepo.On("SaveExpenseItem", ctx,
		mock.AnythingOfType("domain.ExpenseItem"),
		mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	item, err := suite.service.AddItem(ctx, applicationID, dto.CreateExpenseItemRequest{
		BillNumber:    "B-10",
		AmountClaimed: decimal.NewFromInt(100),
	}, suite.reviewer)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestApproveItem_ExceedsClaimed() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	stored := &domain.ExpenseItem{
		ExpenseID:      expenseID,
		AmountClaimed:  decimal.NewFromInt(3000),
		AmountApproved: decimal.Zero,
	}

	suite.mockExpenseRepo.On("FindExpenseItemByID", ctx, expenseID).Return(stored, nil).Once()

	item, err := suite.service.ApproveItem(ctx, expenseID, decimal.NewFromInt(5000), suite.reviewer)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseItem", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestApproveItem_WithinClaimed() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	stored := &domain.ExpenseItem{
		ExpenseID:      expenseID,
		AmountClaimed:  decimal.NewFromInt(3000),
		AmountApproved: decimal.Zero,
	}

	suite.mockExpenseRepo.On("FindExpenseItemByID", ctx, expenseID).Return(stored, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseItem", ctx,
		mock.AnythingOfType("domain.ExpenseItem"),
		mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	item, err := suite.service.ApproveItem(ctx, expenseID, decimal.NewFromInt(2500), suite.reviewer)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.True(item.AmountApproved.Equal(decimal.NewFromInt(2500)))
	suite.Equal(suite.reviewer.UserID, item.LastUpdatedBy)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestApproveItem_NegativeRejected() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	stored := &domain.ExpenseItem{ExpenseID: expenseID, AmountClaimed: decimal.NewFromInt(100)}

	suite.mockExpenseRepo.On("FindExpenseItemByID", ctx, expenseID).Return(stored, nil).Once()

	item, err := suite.service.ApproveItem(ctx, expenseID, decimal.NewFromInt(-1), suite.reviewer)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestApproveItem_NonReviewerForbidden() {
	ctx := context.Background()

	item, err := suite.service.ApproveItem(ctx, uuid.NewString(), decimal.NewFromInt(10), suite.employee)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindExpenseItemByID", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestTotals_SumsLedger() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusUnderReview}

	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()
	suite.mockExpenseRepo.On("FindExpenseItemsByApplicationID", ctx, applicationID).Return([]domain.ExpenseItem{
		{AmountClaimed: decimal.NewFromInt(2000), AmountApproved: decimal.NewFromInt(1500)},
		{AmountClaimed: decimal.NewFromInt(3000), AmountApproved: decimal.Zero},
	}, nil).Once()

	totals, err := suite.service.Totals(ctx, applicationID)

	suite.Require().NoError(err)
	suite.Require().NotNil(totals)
	suite.True(totals.Claimed.Equal(decimal.NewFromInt(5000)))
	suite.True(totals.Approved.Equal(decimal.NewFromInt(1500)))
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

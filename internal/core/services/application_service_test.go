package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/core/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockApplicationRepository is a mock type for the ApplicationRepositoryFacade interface
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListApplications(ctx context.Context, filter portsrepo.ApplicationListFilter) ([]domain.Application, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicationRepository) SaveApplication(ctx context.Context, app domain.Application, items []domain.ExpenseItem, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, app, items, entry)
	return args.Error(0)
}

func (m *MockApplicationRepository) UpdateApplicationStatus(ctx context.Context, upd portsrepo.StatusUpdate, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, upd, entry)
	return args.Error(0)
}

func (m *MockApplicationRepository) DeleteApplication(ctx context.Context, applicationID string, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, applicationID, entry)
	return args.Error(0)
}

func (m *MockApplicationRepository) NextReferenceSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewService is a mock type for the ReviewSvcFacade interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) PerformEligibilityCheck(ctx context.Context, applicationID string, req dto.PerformEligibilityCheckRequest, actor domain.Actor) (*domain.EligibilityCheck, error) {
	args := m.Called(ctx, applicationID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EligibilityCheck), args.Error(1)
}

func (m *MockReviewService) ReviewDocument(ctx context.Context, applicationID, documentID string, req dto.ReviewDocumentRequest, actor domain.Actor) (*domain.DocumentReview, error) {
	args := m.Called(ctx, applicationID, documentID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentReview), args.Error(1)
}

func (m *MockReviewService) AddComment(ctx context.Context, applicationID string, req dto.CreateCommentRequest, actor domain.Actor) (*domain.Comment, error) {
	args := m.Called(ctx, applicationID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockReviewService) ResolveComment(ctx context.Context, commentID string, actor domain.Actor) (*domain.Comment, error) {
	args := m.Called(ctx, commentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockReviewService) ListComments(ctx context.Context, applicationID string, actor domain.Actor) ([]domain.Comment, error) {
	args := m.Called(ctx, applicationID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockReviewService) CreateReview(ctx context.Context, applicationID string, req dto.CreateReviewRequest, actor domain.Actor) (*domain.Review, error) {
	args := m.Called(ctx, applicationID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewService) Summarize(ctx context.Context, applicationID string) (*domain.ReviewSummary, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewSummary), args.Error(1)
}

// --- Test Suite Setup ---

type ApplicationServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockApplicationRepository
	mockReviewSvc *MockReviewService
	service       portssvc.ApplicationSvcFacade
	reviewer      domain.Actor
	employee      domain.Actor
	admin         domain.Actor
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockApplicationRepository)
	suite.mockReviewSvc = new(MockReviewService)
	suite.service = services.NewApplicationService(suite.mockRepo, suite.mockReviewSvc)
	suite.reviewer = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleMedicalOfficer}
	suite.employee = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
	suite.admin = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

func (suite *ApplicationServiceTestSuite) submitRequest() dto.SubmitApplicationRequest {
	return dto.SubmitApplicationRequest{
		EmployeeID:      "EMP-1044",
		EmployeeName:    "Asha Verma",
		PatientName:     "Asha Verma",
		PatientRelation: "SELF",
		TreatmentType:   "OPD",
		HospitalName:    "City Care",
		TreatmentFrom:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TreatmentTo:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Items: []dto.CreateExpenseItemRequest{
			{BillNumber: "B-1", BillDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), AmountClaimed: decimal.NewFromInt(1200)},
			{BillNumber: "B-2", BillDate: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), AmountClaimed: decimal.NewFromInt(800)},
		},
	}
}

// --- Test Cases ---

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_Success() {
	ctx := context.Background()
	req := suite.submitRequest()

	suite.mockRepo.On("NextReferenceSequence", ctx).Return(int64(42), nil).Once()
	suite.mockRepo.On("SaveApplication", ctx,
		mock.AnythingOfType("domain.Application"),
		mock.AnythingOfType("[]domain.ExpenseItem"),
		mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	app, err := suite.service.SubmitApplication(ctx, req, suite.employee)

	suite.Require().NoError(err)
	suite.Require().NotNil(app)
	suite.NotEmpty(app.ApplicationID)
	suite.NotEmpty(app.ReferenceNumber)
	suite.Equal(domain.StatusPending, app.Status)
	suite.True(app.TotalAmountClaimed.Equal(decimal.NewFromInt(2000)), "claimed total was %s", app.TotalAmountClaimed)
	suite.True(app.TotalAmountApproved.IsZero())
	suite.Equal(suite.employee.UserID, app.CreatedBy)
	suite.WithinDuration(time.Now(), app.SubmittedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_TreatmentDatesInverted() {
	ctx := context.Background()
	req := suite.submitRequest()
	req.TreatmentFrom, req.TreatmentTo = req.TreatmentTo, req.TreatmentFrom

	app, err := suite.service.SubmitApplication(ctx, req, suite.employee)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_NegativeItemAmount() {
	ctx := context.Background()
	req := suite.submitRequest()
	req.Items[1].AmountClaimed = decimal.NewFromInt(-5)

	app, err := suite.service.SubmitApplication(ctx, req, suite.employee)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApplicationServiceTestSuite) TestListApplications_AppliesDefaults() {
	ctx := context.Background()

	expected := portsrepo.ApplicationListFilter{
		SortKey:   portsrepo.SortBySubmittedAt,
		SortOrder: portsrepo.SortDesc,
		Limit:     20,
	}
	suite.mockRepo.On("ListApplications", ctx, expected).Return([]domain.Application{}, int64(0), nil).Once()

	_, total, err := suite.service.ListApplications(ctx, portsrepo.ApplicationListFilter{})

	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestUpdateStatus_UnknownTargetStatus() {
	ctx := context.Background()

	app, err := suite.service.UpdateStatus(ctx, uuid.NewString(), dto.UpdateStatusRequest{TargetStatus: "SIDEWAYS"}, suite.reviewer)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApplicationServiceTestSuite) TestUpdateStatus_NonReviewerForbidden() {
	ctx := context.Background()

	app, err := suite.service.UpdateStatus(ctx, uuid.NewString(), dto.UpdateStatusRequest{TargetStatus: string(domain.StatusUnderReview)}, suite.employee)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindApplicationByID", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestUpdateStatus_DisallowedTransition() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{ApplicationID: applicationID, Status: domain.StatusPending}

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Once()

	app, err := suite.service.UpdateStatus(ctx, applicationID, dto.UpdateStatusRequest{TargetStatus: string(domain.StatusApproved)}, suite.reviewer)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrTransitionNotPermitted)

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(422, appErr.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestUpdateStatus_ApproveWithoutFinalDecision() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{ApplicationID: applicationID, Status: domain.StatusUnderReview}

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Once()
	suite.mockReviewSvc.On("Summarize", ctx, applicationID).Return(&domain.ReviewSummary{ApplicationID: applicationID}, nil).Once()

	app, err := suite.service.UpdateStatus(ctx, applicationID, dto.UpdateStatusRequest{TargetStatus: string(domain.StatusApproved)}, suite.reviewer)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrTransitionNotPermitted)
	suite.mockReviewSvc.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateApplicationStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestUpdateStatus_ClarificationDecisionPermitsNeitherTerminal() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{ApplicationID: applicationID, Status: domain.StatusUnderReview}
	decision := domain.DecisionNeedsClarification

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Twice()
	suite.mockReviewSvc.On("Summarize", ctx, applicationID).Return(&domain.ReviewSummary{ApplicationID: applicationID, FinalDecision: &decision}, nil).Twice()

	for _, target := range []domain.ApplicationStatus{domain.StatusApproved, domain.StatusRejected} {
		app, err := suite.service.UpdateStatus(ctx, applicationID, dto.UpdateStatusRequest{TargetStatus: string(target)}, suite.reviewer)
		suite.Require().Error(err, string(target))
		suite.Nil(app)
		suite.ErrorIs(err, apperrors.ErrTransitionNotPermitted)
	}
	suite.mockReviewSvc.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestUpdateStatus_ApproveWithMatchingDecision() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{
		ApplicationID:      applicationID,
		Status:             domain.StatusUnderReview,
		TotalAmountClaimed: decimal.NewFromInt(2000),
	}
	approved := *stored
	approved.Status = domain.StatusApproved
	decision := domain.DecisionApproved
	amount := decimal.NewFromInt(1800)

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Once()
	suite.mockReviewSvc.On("Summarize", ctx, applicationID).Return(&domain.ReviewSummary{ApplicationID: applicationID, FinalDecision: &decision}, nil).Once()
	suite.mockRepo.On("UpdateApplicationStatus", ctx, mock.MatchedBy(func(upd portsrepo.StatusUpdate) bool {
		return upd.ApplicationID == applicationID &&
			upd.ExpectedStatus == domain.StatusUnderReview &&
			upd.TargetStatus == domain.StatusApproved &&
			upd.ReviewedBy == suite.reviewer.UserID
	}), mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()
	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(&approved, nil).Once()

	app, err := suite.service.UpdateStatus(ctx, applicationID, dto.UpdateStatusRequest{
		TargetStatus:   string(domain.StatusApproved),
		ApprovedAmount: &amount,
	}, suite.reviewer)

	suite.Require().NoError(err)
	suite.Require().NotNil(app)
	suite.Equal(domain.StatusApproved, app.Status)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReviewSvc.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestUpdateStatus_ApprovedAmountExceedsClaimed() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{
		ApplicationID:      applicationID,
		Status:             domain.StatusUnderReview,
		TotalAmountClaimed: decimal.NewFromInt(2000),
	}
	decision := domain.DecisionApproved
	amount := decimal.NewFromInt(2500)

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Once()
	suite.mockReviewSvc.On("Summarize", ctx, applicationID).Return(&domain.ReviewSummary{ApplicationID: applicationID, FinalDecision: &decision}, nil).Once()

	app, err := suite.service.UpdateStatus(ctx, applicationID, dto.UpdateStatusRequest{
		TargetStatus:   string(domain.StatusApproved),
		ApprovedAmount: &amount,
	}, suite.reviewer)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateApplicationStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestUpdateStatus_ConflictFromRepository() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{ApplicationID: applicationID, Status: domain.StatusPending}
	conflict := apperrors.NewConflictError("application status changed concurrently")

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateApplicationStatus", ctx, mock.AnythingOfType("repositories.StatusUpdate"), mock.AnythingOfType("domain.AuditLogEntry")).Return(conflict).Once()

	app, err := suite.service.UpdateStatus(ctx, applicationID, dto.UpdateStatusRequest{TargetStatus: string(domain.StatusUnderReview)}, suite.reviewer)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestDeleteApplication_OwnerWhilePending() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{
		ApplicationID: applicationID,
		Status:        domain.StatusPending,
		AuditFields:   domain.AuditFields{CreatedBy: suite.employee.UserID},
	}

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Once()
	suite.mockRepo.On("DeleteApplication", ctx, applicationID, mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	err := suite.service.DeleteApplication(ctx, applicationID, suite.employee)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestDeleteApplication_OwnerAfterReviewStarted() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{
		ApplicationID: applicationID,
		Status:        domain.StatusUnderReview,
		AuditFields:   domain.AuditFields{CreatedBy: suite.employee.UserID},
	}

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Once()

	err := suite.service.DeleteApplication(ctx, applicationID, suite.employee)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTransitionNotPermitted)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteApplication", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestDeleteApplication_StrangerForbidden() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{
		ApplicationID: applicationID,
		Status:        domain.StatusPending,
		AuditFields:   domain.AuditFields{CreatedBy: uuid.NewString()},
	}

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Once()

	err := suite.service.DeleteApplication(ctx, applicationID, suite.employee)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ApplicationServiceTestSuite) TestDeleteApplication_AdminAtAnyStatus() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	stored := &domain.Application{
		ApplicationID: applicationID,
		Status:        domain.StatusCompleted,
		AuditFields:   domain.AuditFields{CreatedBy: uuid.NewString()},
	}

	suite.mockRepo.On("FindApplicationByID", ctx, applicationID).Return(stored, nil).Once()
	suite.mockRepo.On("DeleteApplication", ctx, applicationID, mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	err := suite.service.DeleteApplication(ctx, applicationID, suite.admin)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/core/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
)

// --- Test Suite Setup ---

type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo *MockDocumentRepository
	mockAppRepo *MockApplicationRepository
	service     portssvc.DocumentSvcFacade
	reviewer    domain.Actor
	employee    domain.Actor
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.service = services.NewDocumentService(suite.mockDocRepo, suite.mockAppRepo)
	suite.reviewer = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAccountant}
	suite.employee = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
}

// --- Test Cases ---

func (suite *DocumentServiceTestSuite) TestAttachDocument_Success() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	req := dto.AttachDocumentRequest{
		DocumentType: "PRESCRIPTION",
		FileName:     "rx-march.pdf",
		ContentType:  "application/pdf",
		SizeBytes:    20480,
		StorageKey:   "uploads/2026/rx-march.pdf",
	}

	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusPending}
	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(doc domain.ApplicationDocument) bool {
		return doc.ApplicationID == applicationID &&
			doc.DocumentType == domain.DocPrescription &&
			doc.FileName == "rx-march.pdf" &&
			doc.StorageKey == "uploads/2026/rx-march.pdf" &&
			doc.CreatedBy == suite.employee.UserID
	}), mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	doc, err := suite.service.AttachDocument(ctx, applicationID, req, suite.employee)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.NotEmpty(doc.DocumentID)
	suite.mockAppRepo.AssertExpectations(suite.T())
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestAttachDocument_UnknownType() {
	ctx := context.Background()
	req := dto.AttachDocumentRequest{
		DocumentType: "SELFIE",
		FileName:     "me.jpg",
		StorageKey:   "uploads/me.jpg",
	}

	doc, err := suite.service.AttachDocument(ctx, uuid.NewString(), req, suite.employee)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAppRepo.AssertNotCalled(suite.T(), "FindApplicationByID", mock.Anything, mock.Anything)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestAttachDocument_ApplicationNotFound() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	req := dto.AttachDocumentRequest{
		DocumentType: "BILL",
		FileName:     "bill.pdf",
		StorageKey:   "uploads/bill.pdf",
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(nil, apperrors.ErrNotFound).Once()

	doc, err := suite.service.AttachDocument(ctx, applicationID, req, suite.employee)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestListDocuments_Success() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusUnderReview}
	expected := []domain.ApplicationDocument{
		{DocumentID: uuid.NewString(), ApplicationID: applicationID, DocumentType: domain.DocBill},
		{DocumentID: uuid.NewString(), ApplicationID: applicationID, DocumentType: domain.DocReceipt},
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()
	suite.mockDocRepo.On("FindDocumentsByApplicationID", ctx, applicationID).Return(expected, nil).Once()

	docs, err := suite.service.ListDocuments(ctx, applicationID)

	suite.Require().NoError(err)
	suite.Equal(expected, docs)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_OwnerWhilePending() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	documentID := uuid.NewString()
	doc := &domain.ApplicationDocument{DocumentID: documentID, ApplicationID: applicationID, FileName: "bill.pdf"}
	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusPending}
	app.CreatedBy = suite.employee.UserID

	suite.mockDocRepo.On("FindDocumentByID", ctx, documentID).Return(doc, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()
	suite.mockDocRepo.On("DeleteDocument", ctx, documentID, mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	err := suite.service.DeleteDocument(ctx, documentID, suite.employee)

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_OwnerAfterReviewStarted() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	documentID := uuid.NewString()
	doc := &domain.ApplicationDocument{DocumentID: documentID, ApplicationID: applicationID}
	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusUnderReview}
	app.CreatedBy = suite.employee.UserID

	suite.mockDocRepo.On("FindDocumentByID", ctx, documentID).Return(doc, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()

	err := suite.service.DeleteDocument(ctx, documentID, suite.employee)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTransitionNotPermitted)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "DeleteDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_StrangerForbidden() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	documentID := uuid.NewString()
	doc := &domain.ApplicationDocument{DocumentID: documentID, ApplicationID: applicationID}
	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusPending}
	app.CreatedBy = uuid.NewString()

	suite.mockDocRepo.On("FindDocumentByID", ctx, documentID).Return(doc, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()

	err := suite.service.DeleteDocument(ctx, documentID, suite.employee)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "DeleteDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_ReviewerAtAnyStatus() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	documentID := uuid.NewString()
	doc := &domain.ApplicationDocument{DocumentID: documentID, ApplicationID: applicationID}
	app := &domain.Application{ApplicationID: applicationID, Status: domain.StatusUnderReview}
	app.CreatedBy = uuid.NewString()

	suite.mockDocRepo.On("FindDocumentByID", ctx, documentID).Return(doc, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, applicationID).Return(app, nil).Once()
	suite.mockDocRepo.On("DeleteDocument", ctx, documentID, mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	err := suite.service.DeleteDocument(ctx, documentID, suite.reviewer)

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}

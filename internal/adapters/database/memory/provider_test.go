package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/claimpilot/claims_management_app/internal/adapters/database/memory"
	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type MemoryProviderTestSuite struct {
	suite.Suite
	ctx      context.Context
	provider *memory.Provider
	repos    portsrepo.RepositoryProvider
}

func (suite *MemoryProviderTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.provider = memory.NewProvider()
	suite.Require().NoError(suite.provider.Connect(suite.ctx))
	suite.repos = suite.provider.Repos()
}

func (suite *MemoryProviderTestSuite) entry(entityType, entityID string, at time.Time) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		EntryID:    uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     domain.ActionCreate,
		ActorID:    uuid.NewString(),
		RecordedAt: at,
	}
}

func (suite *MemoryProviderTestSuite) saveApplication(status domain.ApplicationStatus) domain.Application {
	app := domain.Application{
		ApplicationID:      uuid.NewString(),
		ReferenceNumber:    "CMA-2026-" + uuid.NewString()[:8],
		EmployeeID:         "EMP-1",
		Status:             status,
		TotalAmountClaimed: decimal.NewFromInt(1000),
		SubmittedAt:        time.Now().UTC(),
	}
	err := suite.repos.ApplicationRepo.SaveApplication(suite.ctx, app, nil,
		suite.entry(domain.EntityApplication, app.ApplicationID, time.Now().UTC()))
	suite.Require().NoError(err)
	return app
}

// --- Test Cases ---

func (suite *MemoryProviderTestSuite) TestLifecycle() {
	suite.True(suite.provider.IsConnected())

	suite.Require().NoError(suite.provider.Disconnect(suite.ctx))
	suite.False(suite.provider.IsConnected())

	_, err := suite.repos.ApplicationRepo.FindApplicationByID(suite.ctx, uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrNotConnected)
}

func (suite *MemoryProviderTestSuite) TestReconnectKeepsData() {
	app := suite.saveApplication(domain.StatusPending)

	suite.Require().NoError(suite.provider.Connect(suite.ctx))

	got, err := suite.repos.ApplicationRepo.FindApplicationByID(suite.ctx, app.ApplicationID)
	suite.Require().NoError(err)
	suite.Equal(app.ApplicationID, got.ApplicationID)
}

func (suite *MemoryProviderTestSuite) TestCapabilitiesAndRaw() {
	caps := suite.provider.Capabilities()
	suite.False(caps.AtomicSubmit)
	suite.False(caps.RawQuery)

	_, err := suite.provider.Raw(suite.ctx, "SELECT 1")
	suite.ErrorIs(err, apperrors.ErrUnsupported)
}

func (suite *MemoryProviderTestSuite) TestAuditTrailIsImmutable() {
	suite.ErrorIs(suite.repos.AuditRepo.Update(suite.ctx, domain.AuditLogEntry{}), apperrors.ErrImmutableRecord)
	suite.ErrorIs(suite.repos.AuditRepo.Delete(suite.ctx, uuid.NewString()), apperrors.ErrImmutableRecord)
}

func (suite *MemoryProviderTestSuite) TestAuditOrdering() {
	entityID := uuid.NewString()
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	first := suite.entry(domain.EntityApplication, entityID, base)
	second := suite.entry(domain.EntityApplication, entityID, base.Add(time.Minute))
	// Same timestamp as second: insertion order must break the tie.
	tied := suite.entry(domain.EntityApplication, entityID, base.Add(time.Minute))

	suite.Require().NoError(suite.repos.AuditRepo.Record(suite.ctx, first))
	suite.Require().NoError(suite.repos.AuditRepo.Record(suite.ctx, second))
	suite.Require().NoError(suite.repos.AuditRepo.Record(suite.ctx, tied))

	entries, err := suite.repos.AuditRepo.FindByEntity(suite.ctx, domain.EntityApplication, entityID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	suite.Equal(tied.EntryID, entries[0].EntryID)
	suite.Equal(second.EntryID, entries[1].EntryID)
	suite.Equal(first.EntryID, entries[2].EntryID)
}

func (suite *MemoryProviderTestSuite) TestAuditDateRangePagination() {
	entityID := uuid.NewString()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := suite.entry(domain.EntityApplication, entityID, base.Add(time.Duration(i)*time.Hour))
		suite.Require().NoError(suite.repos.AuditRepo.Record(suite.ctx, e))
	}

	start := base.Add(-time.Hour)
	end := base.Add(24 * time.Hour)

	page1, token, err := suite.repos.AuditRepo.FindByDateRange(suite.ctx, start, end, 2, nil)
	suite.Require().NoError(err)
	suite.Require().Len(page1, 2)
	suite.Require().NotNil(token)

	page2, token2, err := suite.repos.AuditRepo.FindByDateRange(suite.ctx, start, end, 2, token)
	suite.Require().NoError(err)
	suite.Require().Len(page2, 2)
	suite.Require().NotNil(token2)

	page3, token3, err := suite.repos.AuditRepo.FindByDateRange(suite.ctx, start, end, 2, token2)
	suite.Require().NoError(err)
	suite.Require().Len(page3, 1)
	suite.Nil(token3)

	seen := map[string]bool{}
	for _, e := range append(append(page1, page2...), page3...) {
		suite.False(seen[e.EntryID], "entry %s repeated across pages", e.EntryID)
		seen[e.EntryID] = true
	}
	suite.Len(seen, 5)
}

func (suite *MemoryProviderTestSuite) TestAuditDateRangeRejectsBadToken() {
	bad := "not-base64!"
	_, _, err := suite.repos.AuditRepo.FindByDateRange(suite.ctx, time.Now().Add(-time.Hour), time.Now(), 10, &bad)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MemoryProviderTestSuite) TestUpdateApplicationStatus_OptimisticConflict() {
	app := suite.saveApplication(domain.StatusPending)

	upd := portsrepo.StatusUpdate{
		ApplicationID:  app.ApplicationID,
		ExpectedStatus: domain.StatusUnderReview, // stale read
		TargetStatus:   domain.StatusApproved,
		ReviewedBy:     uuid.NewString(),
		ReviewedAt:     time.Now().UTC(),
	}
	err := suite.repos.ApplicationRepo.UpdateApplicationStatus(suite.ctx, upd,
		suite.entry(domain.EntityApplication, app.ApplicationID, time.Now().UTC()))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)

	got, err := suite.repos.ApplicationRepo.FindApplicationByID(suite.ctx, app.ApplicationID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, got.Status)
}

func (suite *MemoryProviderTestSuite) TestUpdateApplicationStatus_Success() {
	app := suite.saveApplication(domain.StatusPending)
	reviewer := uuid.NewString()

	upd := portsrepo.StatusUpdate{
		ApplicationID:  app.ApplicationID,
		ExpectedStatus: domain.StatusPending,
		TargetStatus:   domain.StatusUnderReview,
		ReviewedBy:     reviewer,
		ReviewedAt:     time.Now().UTC(),
	}
	err := suite.repos.ApplicationRepo.UpdateApplicationStatus(suite.ctx, upd,
		suite.entry(domain.EntityApplication, app.ApplicationID, time.Now().UTC()))
	suite.Require().NoError(err)

	got, err := suite.repos.ApplicationRepo.FindApplicationByID(suite.ctx, app.ApplicationID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusUnderReview, got.Status)
	suite.Require().NotNil(got.ReviewedBy)
	suite.Equal(reviewer, *got.ReviewedBy)
}

func (suite *MemoryProviderTestSuite) TestDeleteApplication_Cascades() {
	app := suite.saveApplication(domain.StatusPending)
	item := domain.ExpenseItem{
		ExpenseID:     uuid.NewString(),
		ApplicationID: app.ApplicationID,
		BillNumber:    "B-1",
		AmountClaimed: decimal.NewFromInt(100),
	}
	suite.Require().NoError(suite.repos.ExpenseRepo.SaveExpenseItem(suite.ctx, item,
		suite.entry(domain.EntityExpenseItem, item.ExpenseID, time.Now().UTC())))
	doc := domain.ApplicationDocument{
		DocumentID:    uuid.NewString(),
		ApplicationID: app.ApplicationID,
		DocumentType:  domain.DocPrescription,
		FileName:      "rx.pdf",
	}
	suite.Require().NoError(suite.repos.DocumentRepo.SaveDocument(suite.ctx, doc,
		suite.entry(domain.EntityDocument, doc.DocumentID, time.Now().UTC())))

	check := domain.EligibilityCheck{
		CheckID:           uuid.NewString(),
		ApplicationID:     app.ApplicationID,
		EligibilityStatus: domain.Eligible,
		PriorPermission:   domain.PermissionNotRequired,
	}
	suite.Require().NoError(suite.repos.ReviewRepo.SaveEligibilityCheck(suite.ctx, check,
		suite.entry(domain.EntityEligibilityCheck, check.CheckID, time.Now().UTC())))
	docReview := domain.DocumentReview{
		ReviewID:           uuid.NewString(),
		ApplicationID:      app.ApplicationID,
		DocumentID:         doc.DocumentID,
		Flags:              domain.DocumentReviewFlags{IsVerified: true},
		VerificationStatus: domain.VerificationApproved,
	}
	suite.Require().NoError(suite.repos.ReviewRepo.SaveDocumentReview(suite.ctx, docReview,
		suite.entry(domain.EntityDocumentReview, docReview.ReviewID, time.Now().UTC())))
	comment := domain.Comment{
		CommentID:     uuid.NewString(),
		ApplicationID: app.ApplicationID,
		AuthorID:      uuid.NewString(),
		AuthorRole:    domain.RoleAccountant,
		CommentText:   "missing pharmacy stamp",
		CommentType:   domain.CommentClarification,
	}
	suite.Require().NoError(suite.repos.ReviewRepo.SaveComment(suite.ctx, comment,
		suite.entry(domain.EntityComment, comment.CommentID, time.Now().UTC())))
	stageReview := domain.Review{
		ReviewID:      uuid.NewString(),
		ApplicationID: app.ApplicationID,
		Stage:         domain.StageEligibility,
		Decision:      domain.DecisionApproved,
	}
	suite.Require().NoError(suite.repos.ReviewRepo.SaveReview(suite.ctx, stageReview,
		suite.entry(domain.EntityReview, stageReview.ReviewID, time.Now().UTC())))

	err := suite.repos.ApplicationRepo.DeleteApplication(suite.ctx, app.ApplicationID,
		suite.entry(domain.EntityApplication, app.ApplicationID, time.Now().UTC()))
	suite.Require().NoError(err)

	_, err = suite.repos.ApplicationRepo.FindApplicationByID(suite.ctx, app.ApplicationID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	items, err := suite.repos.ExpenseRepo.FindExpenseItemsByApplicationID(suite.ctx, app.ApplicationID)
	suite.Require().NoError(err)
	suite.Empty(items)
	docs, err := suite.repos.DocumentRepo.FindDocumentsByApplicationID(suite.ctx, app.ApplicationID)
	suite.Require().NoError(err)
	suite.Empty(docs)

	// The review trail outlives the application it describes.
	checks, err := suite.repos.ReviewRepo.FindEligibilityChecksByApplicationID(suite.ctx, app.ApplicationID)
	suite.Require().NoError(err)
	suite.Len(checks, 1)
	docReviews, err := suite.repos.ReviewRepo.FindDocumentReviewsByApplicationID(suite.ctx, app.ApplicationID)
	suite.Require().NoError(err)
	suite.Len(docReviews, 1)
	comments, err := suite.repos.ReviewRepo.FindCommentsByApplicationID(suite.ctx, app.ApplicationID, true)
	suite.Require().NoError(err)
	suite.Len(comments, 1)
	stageReviews, err := suite.repos.ReviewRepo.FindReviewsByApplicationID(suite.ctx, app.ApplicationID)
	suite.Require().NoError(err)
	suite.Len(stageReviews, 1)
}

func (suite *MemoryProviderTestSuite) TestSaveUser_DuplicateEmail() {
	user := domain.User{
		UserID: uuid.NewString(),
		Name:   "First",
		Email:  "dup@example.com",
		Role:   domain.RoleEmployee,
	}
	suite.Require().NoError(suite.repos.UserRepo.SaveUser(suite.ctx, user))

	twin := domain.User{
		UserID: uuid.NewString(),
		Name:   "Second",
		Email:  "DUP@example.com", // case-insensitive match
		Role:   domain.RoleEmployee,
	}
	err := suite.repos.UserRepo.SaveUser(suite.ctx, twin)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *MemoryProviderTestSuite) TestNextReferenceSequence_Monotonic() {
	first, err := suite.repos.ApplicationRepo.NextReferenceSequence(suite.ctx)
	suite.Require().NoError(err)
	second, err := suite.repos.ApplicationRepo.NextReferenceSequence(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(first+1, second)
}

func (suite *MemoryProviderTestSuite) TestListApplications_FilterAndSort() {
	statusPending := domain.StatusPending
	appA := suite.saveApplication(domain.StatusPending)
	suite.saveApplication(domain.StatusUnderReview)
	appC := suite.saveApplication(domain.StatusPending)

	apps, total, err := suite.repos.ApplicationRepo.ListApplications(suite.ctx, portsrepo.ApplicationListFilter{
		Status:    &statusPending,
		SortKey:   portsrepo.SortBySubmittedAt,
		SortOrder: portsrepo.SortAsc,
		Limit:     10,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Require().Len(apps, 2)
	suite.Equal(appA.ApplicationID, apps[0].ApplicationID)
	suite.Equal(appC.ApplicationID, apps[1].ApplicationID)
}

func TestMemoryProviderTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryProviderTestSuite))
}

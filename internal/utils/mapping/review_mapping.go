package mapping

import (
	"encoding/json"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/claimpilot/claims_management_app/internal/models"
)

func stringsToJSON(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func jsonToStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}

// ToModelEligibilityCheck converts a domain EligibilityCheck to its storage model.
func ToModelEligibilityCheck(d domain.EligibilityCheck) models.EligibilityCheck {
	return models.EligibilityCheck{
		CheckID:              d.CheckID,
		ApplicationID:        d.ApplicationID,
		CategoryProofValid:   d.Flags.CategoryProofValid,
		EmployeeIDVerified:   d.Flags.EmployeeIDVerified,
		MedicalCardValid:     d.Flags.MedicalCardValid,
		RelationshipVerified: d.Flags.RelationshipVerified,
		WithinClaimLimit:     d.Flags.WithinClaimLimit,
		TreatmentCovered:     d.Flags.TreatmentCovered,
		PriorPermission:      string(d.PriorPermission),
		EligibilityStatus:    string(d.EligibilityStatus),
		ReasonsJSON:          stringsToJSON(d.Reasons),
		ConditionsJSON:       stringsToJSON(d.Conditions),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEligibilityCheck converts a storage EligibilityCheck to the domain.
func ToDomainEligibilityCheck(m models.EligibilityCheck) domain.EligibilityCheck {
	return domain.EligibilityCheck{
		CheckID:       m.CheckID,
		ApplicationID: m.ApplicationID,
		Flags: domain.EligibilityFlags{
			CategoryProofValid:   m.CategoryProofValid,
			EmployeeIDVerified:   m.EmployeeIDVerified,
			MedicalCardValid:     m.MedicalCardValid,
			RelationshipVerified: m.RelationshipVerified,
			WithinClaimLimit:     m.WithinClaimLimit,
			TreatmentCovered:     m.TreatmentCovered,
		},
		PriorPermission:   domain.PriorPermissionStatus(m.PriorPermission),
		EligibilityStatus: domain.EligibilityStatus(m.EligibilityStatus),
		Reasons:           jsonToStrings(m.ReasonsJSON),
		Conditions:        jsonToStrings(m.ConditionsJSON),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEligibilityCheckSlice converts a slice of storage EligibilityChecks.
func ToDomainEligibilityCheckSlice(ms []models.EligibilityCheck) []domain.EligibilityCheck {
	ds := make([]domain.EligibilityCheck, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEligibilityCheck(m)
	}
	return ds
}

// ToModelDocumentReview converts a domain DocumentReview to its storage model.
func ToModelDocumentReview(d domain.DocumentReview) models.DocumentReview {
	return models.DocumentReview{
		ReviewID:           d.ReviewID,
		ApplicationID:      d.ApplicationID,
		DocumentID:         d.DocumentID,
		IsVerified:         d.Flags.IsVerified,
		IsComplete:         d.Flags.IsComplete,
		IsLegible:          d.Flags.IsLegible,
		Remarks:            d.Remarks,
		VerificationStatus: string(d.VerificationStatus),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocumentReview converts a storage DocumentReview to the domain.
func ToDomainDocumentReview(m models.DocumentReview) domain.DocumentReview {
	return domain.DocumentReview{
		ReviewID:      m.ReviewID,
		ApplicationID: m.ApplicationID,
		DocumentID:    m.DocumentID,
		Flags: domain.DocumentReviewFlags{
			IsVerified: m.IsVerified,
			IsComplete: m.IsComplete,
			IsLegible:  m.IsLegible,
		},
		Remarks:            m.Remarks,
		VerificationStatus: domain.VerificationStatus(m.VerificationStatus),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentReviewSlice converts a slice of storage DocumentReviews.
func ToDomainDocumentReviewSlice(ms []models.DocumentReview) []domain.DocumentReview {
	ds := make([]domain.DocumentReview, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocumentReview(m)
	}
	return ds
}

// ToModelComment converts a domain Comment to its storage model.
func ToModelComment(d domain.Comment) models.Comment {
	return models.Comment{
		CommentID:     d.CommentID,
		ApplicationID: d.ApplicationID,
		AuthorID:      d.AuthorID,
		AuthorRole:    string(d.AuthorRole),
		CommentText:   d.CommentText,
		CommentType:   string(d.CommentType),
		IsInternal:    d.IsInternal,
		IsResolved:    d.IsResolved,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainComment converts a storage Comment to the domain.
func ToDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID:     m.CommentID,
		ApplicationID: m.ApplicationID,
		AuthorID:      m.AuthorID,
		AuthorRole:    domain.UserRole(m.AuthorRole),
		CommentText:   m.CommentText,
		CommentType:   domain.CommentType(m.CommentType),
		IsInternal:    m.IsInternal,
		IsResolved:    m.IsResolved,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCommentSlice converts a slice of storage Comments.
func ToDomainCommentSlice(ms []models.Comment) []domain.Comment {
	ds := make([]domain.Comment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainComment(m)
	}
	return ds
}

// ToModelReview converts a domain Review to its storage model.
func ToModelReview(d domain.Review) models.Review {
	return models.Review{
		ReviewID:            d.ReviewID,
		ApplicationID:       d.ApplicationID,
		Stage:               string(d.Stage),
		Decision:            string(d.Decision),
		EligibilityVerified: d.Flags.EligibilityVerified,
		DocumentsVerified:   d.Flags.DocumentsVerified,
		MedicalValidity:     d.Flags.MedicalValidity,
		ExpensesVerified:    d.Flags.ExpensesVerified,
		Remarks:             d.Remarks,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReview converts a storage Review to the domain.
func ToDomainReview(m models.Review) domain.Review {
	return domain.Review{
		ReviewID:      m.ReviewID,
		ApplicationID: m.ApplicationID,
		Stage:         domain.ReviewStage(m.Stage),
		Decision:      domain.ReviewDecision(m.Decision),
		Flags: domain.ReviewFlags{
			EligibilityVerified: m.EligibilityVerified,
			DocumentsVerified:   m.DocumentsVerified,
			MedicalValidity:     m.MedicalValidity,
			ExpensesVerified:    m.ExpensesVerified,
		},
		Remarks:     m.Remarks,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReviewSlice converts a slice of storage Reviews.
func ToDomainReviewSlice(ms []models.Review) []domain.Review {
	ds := make([]domain.Review, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReview(m)
	}
	return ds
}

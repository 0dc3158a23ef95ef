package dto

// PerformEligibilityCheckRequest is one eligibility pass as submitted by a reviewer.
// The derived status may be overridden by the engine's safety guard.
type PerformEligibilityCheckRequest struct {
	CategoryProofValid   bool     `json:"categoryProofValid"`
	EmployeeIDVerified   bool     `json:"employeeIDVerified"`
	MedicalCardValid     bool     `json:"medicalCardValid"`
	RelationshipVerified bool     `json:"relationshipVerified"`
	WithinClaimLimit     bool     `json:"withinClaimLimit"`
	TreatmentCovered     bool     `json:"treatmentCovered"`
	PriorPermission      string   `json:"priorPermission"`
	EligibilityStatus    string   `json:"eligibilityStatus"`
	Conditions           []string `json:"conditions,omitempty"`
}

// ReviewDocumentRequest is one (document, reviewer) verification pass.
type ReviewDocumentRequest struct {
	IsVerified bool   `json:"isVerified"`
	IsComplete bool   `json:"isComplete"`
	IsLegible  bool   `json:"isLegible"`
	Remarks    string `json:"remarks"`
}

// CreateCommentRequest adds a threaded note to an application.
type CreateCommentRequest struct {
	CommentText string `json:"commentText" binding:"required"`
	CommentType string `json:"commentType" binding:"required"`
	IsInternal  bool   `json:"isInternal"`
}

// CreateReviewRequest records a stage-scoped decision.
type CreateReviewRequest struct {
	Stage               string `json:"stage" binding:"required"`
	Decision            string `json:"decision" binding:"required"`
	EligibilityVerified bool   `json:"eligibilityVerified"`
	DocumentsVerified   bool   `json:"documentsVerified"`
	MedicalValidity     bool   `json:"medicalValidity"`
	ExpensesVerified    bool   `json:"expensesVerified"`
	Remarks             string `json:"remarks"`
}

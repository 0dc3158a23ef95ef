package domain

// ReviewStage names a checkpoint in the multi-step approval process.
type ReviewStage string

const (
	StageEligibility ReviewStage = "ELIGIBILITY"
	StageFinal       ReviewStage = "FINAL"
)

// ReviewDecision is the outcome recorded at a review stage.
type ReviewDecision string

const (
	DecisionApproved           ReviewDecision = "APPROVED"
	DecisionRejected           ReviewDecision = "REJECTED"
	DecisionNeedsClarification ReviewDecision = "NEEDS_CLARIFICATION"
)

// ReviewFlags records which aspects of the claim were verified at this stage.
type ReviewFlags struct {
	EligibilityVerified bool `json:"eligibilityVerified"`
	DocumentsVerified   bool `json:"documentsVerified"`
	MedicalValidity     bool `json:"medicalValidity"`
	ExpensesVerified    bool `json:"expensesVerified"`
}

// Review is the decision record for one review stage. Immutable once created.
// The status state machine consults the latest FINAL-stage review before
// allowing a terminal transition.
type Review struct {
	ReviewID      string         `json:"reviewID"` // Primary Key (UUID)
	ApplicationID string         `json:"applicationID"`
	Stage         ReviewStage    `json:"stage"`
	Decision      ReviewDecision `json:"decision"`
	Flags         ReviewFlags    `json:"flags"`
	Remarks       string         `json:"remarks,omitempty"`
	AuditFields
}

// ReviewSummary is the aggregated read model over all review sub-records of one
// application, consumed by reporting and by the state machine's guard.
type ReviewSummary struct {
	ApplicationID        string             `json:"applicationID"`
	LatestEligibility    *EligibilityCheck  `json:"latestEligibility,omitempty"`
	DocumentsTotal       int                `json:"documentsTotal"`
	DocumentsVerified    int                `json:"documentsVerified"`
	UnresolvedComments   int                `json:"unresolvedComments"`
	LatestStage          *ReviewStage       `json:"latestStage,omitempty"`
	LatestDecision       *ReviewDecision    `json:"latestDecision,omitempty"`
	FinalDecision        *ReviewDecision    `json:"finalDecision,omitempty"`
	OverallStatus        string             `json:"overallStatus"`
	CompletionPercentage int                `json:"completionPercentage"`
}

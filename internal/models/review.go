package models

// EligibilityCheck is the storage model of one eligibility pass. Reasons and
// Conditions are serialized as JSON arrays in the row.
type EligibilityCheck struct {
	CheckID              string `json:"checkID"`
	ApplicationID        string `json:"applicationID"`
	CategoryProofValid   bool   `json:"categoryProofValid"`
	EmployeeIDVerified   bool   `json:"employeeIDVerified"`
	MedicalCardValid     bool   `json:"medicalCardValid"`
	RelationshipVerified bool   `json:"relationshipVerified"`
	WithinClaimLimit     bool   `json:"withinClaimLimit"`
	TreatmentCovered     bool   `json:"treatmentCovered"`
	PriorPermission      string `json:"priorPermission"`
	EligibilityStatus    string `json:"eligibilityStatus"`
	ReasonsJSON          string `json:"reasonsJSON"`
	ConditionsJSON       string `json:"conditionsJSON"`
	AuditFields
}

// DocumentReview is the storage model of one document verification pass.
type DocumentReview struct {
	ReviewID           string `json:"reviewID"`
	ApplicationID      string `json:"applicationID"`
	DocumentID         string `json:"documentID"`
	IsVerified         bool   `json:"isVerified"`
	IsComplete         bool   `json:"isComplete"`
	IsLegible          bool   `json:"isLegible"`
	Remarks            string `json:"remarks"`
	VerificationStatus string `json:"verificationStatus"`
	AuditFields
}

// Comment is the storage model of one threaded note.
type Comment struct {
	CommentID     string `json:"commentID"`
	ApplicationID string `json:"applicationID"`
	AuthorID      string `json:"authorID"`
	AuthorRole    string `json:"authorRole"`
	CommentText   string `json:"commentText"`
	CommentType   string `json:"commentType"`
	IsInternal    bool   `json:"isInternal"`
	IsResolved    bool   `json:"isResolved"`
	AuditFields
}

// Review is the storage model of one stage decision record.
type Review struct {
	ReviewID            string `json:"reviewID"`
	ApplicationID       string `json:"applicationID"`
	Stage               string `json:"stage"`
	Decision            string `json:"decision"`
	EligibilityVerified bool   `json:"eligibilityVerified"`
	DocumentsVerified   bool   `json:"documentsVerified"`
	MedicalValidity     bool   `json:"medicalValidity"`
	ExpensesVerified    bool   `json:"expensesVerified"`
	Remarks             string `json:"remarks"`
	AuditFields
}

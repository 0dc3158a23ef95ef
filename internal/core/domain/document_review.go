package domain

// VerificationStatus is the derived outcome of one document review pass.
type VerificationStatus string

const (
	VerificationApproved           VerificationStatus = "APPROVED"
	VerificationNeedsClarification VerificationStatus = "NEEDS_CLARIFICATION"
)

// DocumentReviewFlags are the per-document verification booleans.
type DocumentReviewFlags struct {
	IsVerified bool `json:"isVerified"`
	IsComplete bool `json:"isComplete"`
	IsLegible  bool `json:"isLegible"`
}

// DocumentReview is one (document, reviewer) verification pass. Feeds the
// aggregate document-completeness gate consumed by Summarize.
type DocumentReview struct {
	ReviewID           string              `json:"reviewID"` // Primary Key (UUID)
	ApplicationID      string              `json:"applicationID"`
	DocumentID         string              `json:"documentID"`
	Flags              DocumentReviewFlags `json:"flags"`
	Remarks            string              `json:"remarks,omitempty"`
	VerificationStatus VerificationStatus  `json:"verificationStatus"`
	AuditFields
}

// DeriveVerificationStatus maps the verified flag onto the review outcome.
func DeriveVerificationStatus(flags DocumentReviewFlags) VerificationStatus {
	if flags.IsVerified {
		return VerificationApproved
	}
	return VerificationNeedsClarification
}

package domain

// EligibilityStatus is the derived outcome of one eligibility pass.
type EligibilityStatus string

const (
	Eligible    EligibilityStatus = "ELIGIBLE"
	NotEligible EligibilityStatus = "NOT_ELIGIBLE"
	Conditional EligibilityStatus = "CONDITIONAL"
)

// PriorPermissionStatus covers treatments that require advance approval.
type PriorPermissionStatus string

const (
	PermissionNotRequired PriorPermissionStatus = "NOT_REQUIRED"
	PermissionObtained    PriorPermissionStatus = "OBTAINED"
	PermissionPending     PriorPermissionStatus = "PENDING"
)

// EligibilityFlags are the verification booleans a reviewer records during an
// eligibility pass.
type EligibilityFlags struct {
	CategoryProofValid   bool `json:"categoryProofValid"`
	EmployeeIDVerified   bool `json:"employeeIDVerified"`
	MedicalCardValid     bool `json:"medicalCardValid"`
	RelationshipVerified bool `json:"relationshipVerified"`
	WithinClaimLimit     bool `json:"withinClaimLimit"`
	TreatmentCovered     bool `json:"treatmentCovered"`
}

// EligibilityCheck is one eligibility pass over an application. Immutable once
// created; a later pass supersedes it rather than editing it.
type EligibilityCheck struct {
	CheckID           string                `json:"checkID"` // Primary Key (UUID)
	ApplicationID     string                `json:"applicationID"`
	Flags             EligibilityFlags      `json:"flags"`
	PriorPermission   PriorPermissionStatus `json:"priorPermission"`
	EligibilityStatus EligibilityStatus     `json:"eligibilityStatus"`
	Reasons           []string              `json:"reasons,omitempty"`
	Conditions        []string              `json:"conditions,omitempty"`
	AuditFields
}

// DeriveEligibilityStatus forces NOT_ELIGIBLE whenever any identity gate fails,
// overriding whatever the caller proposed. The identity gates are category proof,
// employee ID and medical card.
func DeriveEligibilityStatus(flags EligibilityFlags, proposed EligibilityStatus) (EligibilityStatus, []string) {
	var reasons []string
	if !flags.CategoryProofValid {
		reasons = append(reasons, "category proof is not valid")
	}
	if !flags.EmployeeIDVerified {
		reasons = append(reasons, "employee identity is not verified")
	}
	if !flags.MedicalCardValid {
		reasons = append(reasons, "medical card is not valid")
	}
	if len(reasons) > 0 {
		return NotEligible, reasons
	}
	if proposed == "" {
		return Eligible, nil
	}
	return proposed, nil
}

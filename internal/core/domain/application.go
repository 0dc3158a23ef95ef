package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus indicates where a reimbursement claim sits in the review workflow.
type ApplicationStatus string

const (
	StatusPending               ApplicationStatus = "PENDING"
	StatusUnderReview           ApplicationStatus = "UNDER_REVIEW"
	StatusClarificationRequired ApplicationStatus = "CLARIFICATION_REQUIRED"
	StatusApproved              ApplicationStatus = "APPROVED"
	StatusRejected              ApplicationStatus = "REJECTED"
	StatusCompleted             ApplicationStatus = "COMPLETED"
)

// allowedTransitions is the canonical transition table of the claim workflow.
// Terminal states have no outgoing edges.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:               {StatusUnderReview},
	StatusUnderReview:           {StatusApproved, StatusRejected, StatusClarificationRequired},
	StatusClarificationRequired: {StatusUnderReview},
	StatusApproved:              {StatusCompleted},
	StatusRejected:              {},
	StatusCompleted:             {},
}

// CanTransition reports whether moving from one status to another is allowed
// by the transition table. Guards that depend on review state are applied by
// the application service on top of this check.
func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status ends the workflow for decision purposes.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCompleted
}

// IsValidStatus reports whether the given string names a known status.
func IsValidStatus(s ApplicationStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Application is a single medical-expense reimbursement claim tied to one
// patient/treatment episode. Created once at submission; mutated only through
// status-gated operations.
type Application struct {
	ApplicationID       string            `json:"applicationID"` // Primary Key (UUID)
	ReferenceNumber     string            `json:"referenceNumber"`
	EmployeeID          string            `json:"employeeID"`
	EmployeeName        string            `json:"employeeName"`
	PatientName         string            `json:"patientName"`
	PatientRelation     string            `json:"patientRelation"` // self, spouse, child, parent
	TreatmentType       string            `json:"treatmentType"`   // opd, hospitalization, dental, ...
	HospitalName        string            `json:"hospitalName"`
	TreatmentFrom       time.Time         `json:"treatmentFrom"`
	TreatmentTo         time.Time         `json:"treatmentTo"`
	Status              ApplicationStatus `json:"status"`
	TotalAmountClaimed  decimal.Decimal   `json:"totalAmountClaimed"`
	TotalAmountApproved decimal.Decimal   `json:"totalAmountApproved"`
	SubmittedAt         time.Time         `json:"submittedAt"`
	ReviewedBy          *string           `json:"reviewedBy,omitempty"`
	ReviewedAt          *time.Time        `json:"reviewedAt,omitempty"`
	ReviewerComments    *string           `json:"reviewerComments,omitempty"`
	AuditFields
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Application is the storage model of a reimbursement claim.
type Application struct {
	ApplicationID       string          `json:"applicationID"`
	ReferenceNumber     string          `json:"referenceNumber"`
	EmployeeID          string          `json:"employeeID"`
	EmployeeName        string          `json:"employeeName"`
	PatientName         string          `json:"patientName"`
	PatientRelation     string          `json:"patientRelation"`
	TreatmentType       string          `json:"treatmentType"`
	HospitalName        string          `json:"hospitalName"`
	TreatmentFrom       time.Time       `json:"treatmentFrom"`
	TreatmentTo         time.Time       `json:"treatmentTo"`
	Status              string          `json:"status"`
	TotalAmountClaimed  decimal.Decimal `json:"totalAmountClaimed"`
	TotalAmountApproved decimal.Decimal `json:"totalAmountApproved"`
	SubmittedAt         time.Time       `json:"submittedAt"`
	ReviewedBy          *string         `json:"reviewedBy,omitempty"`
	ReviewedAt          *time.Time      `json:"reviewedAt,omitempty"`
	ReviewerComments    *string         `json:"reviewerComments,omitempty"`
	AuditFields
}

// ExpenseItem is the storage model of one bill line.
type ExpenseItem struct {
	ExpenseID      string          `json:"expenseID"`
	ApplicationID  string          `json:"applicationID"`
	BillNumber     string          `json:"billNumber"`
	BillDate       time.Time       `json:"billDate"`
	Description    string          `json:"description"`
	AmountClaimed  decimal.Decimal `json:"amountClaimed"`
	AmountApproved decimal.Decimal `json:"amountApproved"`
	AuditFields
}

// ApplicationDocument is the storage model of one uploaded file's metadata.
type ApplicationDocument struct {
	DocumentID    string `json:"documentID"`
	ApplicationID string `json:"applicationID"`
	DocumentType  string `json:"documentType"`
	FileName      string `json:"fileName"`
	ContentType   string `json:"contentType"`
	SizeBytes     int64  `json:"sizeBytes"`
	StorageKey    string `json:"storageKey"`
	AuditFields
}

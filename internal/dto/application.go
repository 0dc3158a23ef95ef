package dto

import (
	"time"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseItemRequest is one bill line inside a submission.
type CreateExpenseItemRequest struct {
	BillNumber    string          `json:"billNumber" binding:"required"`
	BillDate      time.Time       `json:"billDate" binding:"required"`
	Description   string          `json:"description"`
	AmountClaimed decimal.Decimal `json:"amountClaimed" binding:"required"`
}

// SubmitApplicationRequest is the payload for submitting a new claim.
type SubmitApplicationRequest struct {
	EmployeeID      string                     `json:"employeeID" binding:"required"`
	EmployeeName    string                     `json:"employeeName" binding:"required"`
	PatientName     string                     `json:"patientName" binding:"required"`
	PatientRelation string                     `json:"patientRelation" binding:"required"`
	TreatmentType   string                     `json:"treatmentType" binding:"required"`
	HospitalName    string                     `json:"hospitalName"`
	TreatmentFrom   time.Time                  `json:"treatmentFrom" binding:"required"`
	TreatmentTo     time.Time                  `json:"treatmentTo" binding:"required"`
	Items           []CreateExpenseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SubmitApplicationResponse is returned once a claim is accepted.
type SubmitApplicationResponse struct {
	ApplicationID   string    `json:"applicationID"`
	ReferenceNumber string    `json:"referenceNumber"`
	Status          string    `json:"status"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// ListApplicationsRequest narrows and pages the application listing.
type ListApplicationsRequest struct {
	Status     string `form:"status"`
	EmployeeID string `form:"employeeID"`
	From       string `form:"from"`
	To         string `form:"to"`
	SortBy     string `form:"sortBy"`
	SortOrder  string `form:"sortOrder"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

// UpdateStatusRequest asks for one state-machine transition.
type UpdateStatusRequest struct {
	TargetStatus   string           `json:"targetStatus" binding:"required"`
	Comments       *string          `json:"comments,omitempty"`
	ApprovedAmount *decimal.Decimal `json:"approvedAmount,omitempty"`
}

// ApplicationResponse is the transport view of an application.
type ApplicationResponse struct {
	ApplicationID       string          `json:"applicationID"`
	ReferenceNumber     string          `json:"referenceNumber"`
	EmployeeID          string          `json:"employeeID"`
	EmployeeName        string          `json:"employeeName"`
	PatientName         string          `json:"patientName"`
	PatientRelation     string          `json:"patientRelation"`
	TreatmentType       string          `json:"treatmentType"`
	HospitalName        string          `json:"hospitalName"`
	Status              string          `json:"status"`
	TotalAmountClaimed  decimal.Decimal `json:"totalAmountClaimed"`
	TotalAmountApproved decimal.Decimal `json:"totalAmountApproved"`
	SubmittedAt         time.Time       `json:"submittedAt"`
	ReviewedBy          *string         `json:"reviewedBy,omitempty"`
	ReviewedAt          *time.Time      `json:"reviewedAt,omitempty"`
	ReviewerComments    *string         `json:"reviewerComments,omitempty"`
}

// ListApplicationsResponse is one page of applications.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
}

// ToApplicationResponse converts a domain.Application to its transport view.
func ToApplicationResponse(a *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID:       a.ApplicationID,
		ReferenceNumber:     a.ReferenceNumber,
		EmployeeID:          a.EmployeeID,
		EmployeeName:        a.EmployeeName,
		PatientName:         a.PatientName,
		PatientRelation:     a.PatientRelation,
		TreatmentType:       a.TreatmentType,
		HospitalName:        a.HospitalName,
		Status:              string(a.Status),
		TotalAmountClaimed:  a.TotalAmountClaimed,
		TotalAmountApproved: a.TotalAmountApproved,
		SubmittedAt:         a.SubmittedAt,
		ReviewedBy:          a.ReviewedBy,
		ReviewedAt:          a.ReviewedAt,
		ReviewerComments:    a.ReviewerComments,
	}
}

// ToApplicationResponses converts a slice of applications.
func ToApplicationResponses(apps []domain.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, len(apps))
	for i := range apps {
		responses[i] = ToApplicationResponse(&apps[i])
	}
	return responses
}

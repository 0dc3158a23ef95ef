package mapping

import (
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/claimpilot/claims_management_app/internal/models"
)

// ToModelApplication converts a domain Application to its storage model.
func ToModelApplication(d domain.Application) models.Application {
	return models.Application{
		ApplicationID:       d.ApplicationID,
		ReferenceNumber:     d.ReferenceNumber,
		EmployeeID:          d.EmployeeID,
		EmployeeName:        d.EmployeeName,
		PatientName:         d.PatientName,
		PatientRelation:     d.PatientRelation,
		TreatmentType:       d.TreatmentType,
		HospitalName:        d.HospitalName,
		TreatmentFrom:       d.TreatmentFrom,
		TreatmentTo:         d.TreatmentTo,
		Status:              string(d.Status),
		TotalAmountClaimed:  d.TotalAmountClaimed,
		TotalAmountApproved: d.TotalAmountApproved,
		SubmittedAt:         d.SubmittedAt,
		ReviewedBy:          d.ReviewedBy,
		ReviewedAt:          d.ReviewedAt,
		ReviewerComments:    d.ReviewerComments,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApplication converts a storage Application to the domain.
func ToDomainApplication(m models.Application) domain.Application {
	return domain.Application{
		ApplicationID:       m.ApplicationID,
		ReferenceNumber:     m.ReferenceNumber,
		EmployeeID:          m.EmployeeID,
		EmployeeName:        m.EmployeeName,
		PatientName:         m.PatientName,
		PatientRelation:     m.PatientRelation,
		TreatmentType:       m.TreatmentType,
		HospitalName:        m.HospitalName,
		TreatmentFrom:       m.TreatmentFrom,
		TreatmentTo:         m.TreatmentTo,
		Status:              domain.ApplicationStatus(m.Status),
		TotalAmountClaimed:  m.TotalAmountClaimed,
		TotalAmountApproved: m.TotalAmountApproved,
		SubmittedAt:         m.SubmittedAt,
		ReviewedBy:          m.ReviewedBy,
		ReviewedAt:          m.ReviewedAt,
		ReviewerComments:    m.ReviewerComments,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApplicationSlice converts a slice of storage Applications.
func ToDomainApplicationSlice(ms []models.Application) []domain.Application {
	ds := make([]domain.Application, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApplication(m)
	}
	return ds
}

// ToModelExpenseItem converts a domain ExpenseItem to its storage model.
func ToModelExpenseItem(d domain.ExpenseItem) models.ExpenseItem {
	return models.ExpenseItem{
		ExpenseID:      d.ExpenseID,
		ApplicationID:  d.ApplicationID,
		BillNumber:     d.BillNumber,
		BillDate:       d.BillDate,
		Description:    d.Description,
		AmountClaimed:  d.AmountClaimed,
		AmountApproved: d.AmountApproved,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpenseItem converts a storage ExpenseItem to the domain.
func ToDomainExpenseItem(m models.ExpenseItem) domain.ExpenseItem {
	return domain.ExpenseItem{
		ExpenseID:      m.ExpenseID,
		ApplicationID:  m.ApplicationID,
		BillNumber:     m.BillNumber,
		BillDate:       m.BillDate,
		Description:    m.Description,
		AmountClaimed:  m.AmountClaimed,
		AmountApproved: m.AmountApproved,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseItemSlice converts a slice of storage ExpenseItems.
func ToDomainExpenseItemSlice(ms []models.ExpenseItem) []domain.ExpenseItem {
	ds := make([]domain.ExpenseItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseItem(m)
	}
	return ds
}

// ToModelDocument converts a domain ApplicationDocument to its storage model.
func ToModelDocument(d domain.ApplicationDocument) models.ApplicationDocument {
	return models.ApplicationDocument{
		DocumentID:    d.DocumentID,
		ApplicationID: d.ApplicationID,
		DocumentType:  string(d.DocumentType),
		FileName:      d.FileName,
		ContentType:   d.ContentType,
		SizeBytes:     d.SizeBytes,
		StorageKey:    d.StorageKey,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a storage ApplicationDocument to the domain.
func ToDomainDocument(m models.ApplicationDocument) domain.ApplicationDocument {
	return domain.ApplicationDocument{
		DocumentID:    m.DocumentID,
		ApplicationID: m.ApplicationID,
		DocumentType:  domain.DocumentType(m.DocumentType),
		FileName:      m.FileName,
		ContentType:   m.ContentType,
		SizeBytes:     m.SizeBytes,
		StorageKey:    m.StorageKey,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentSlice converts a slice of storage ApplicationDocuments.
func ToDomainDocumentSlice(ms []models.ApplicationDocument) []domain.ApplicationDocument {
	ds := make([]domain.ApplicationDocument, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}

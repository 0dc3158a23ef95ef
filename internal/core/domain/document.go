package domain

// DocumentType classifies an uploaded claim document.
type DocumentType string

const (
	DocPrescription DocumentType = "PRESCRIPTION"
	DocBill         DocumentType = "BILL"
	DocReceipt      DocumentType = "RECEIPT"
	DocDischarge    DocumentType = "DISCHARGE_SUMMARY"
	DocCertificate  DocumentType = "CERTIFICATE"
	DocOther        DocumentType = "OTHER"
)

// ApplicationDocument is the metadata record for one uploaded file. StorageKey is
// an opaque locator owned by the upstream file-storage collaborator; the core
// never parses it.
type ApplicationDocument struct {
	DocumentID    string       `json:"documentID"` // Primary Key (UUID)
	ApplicationID string       `json:"applicationID"`
	DocumentType  DocumentType `json:"documentType"`
	FileName      string       `json:"fileName"`
	ContentType   string       `json:"contentType"`
	SizeBytes     int64        `json:"sizeBytes"`
	StorageKey    string       `json:"storageKey"`
	AuditFields
}

package dto

// AttachDocumentRequest registers metadata for an uploaded file. The storage
// key comes from the upload collaborator and is treated as opaque.
type AttachDocumentRequest struct {
	DocumentType string `json:"documentType" binding:"required"`
	FileName     string `json:"fileName" binding:"required"`
	ContentType  string `json:"contentType"`
	SizeBytes    int64  `json:"sizeBytes" binding:"min=0"`
	StorageKey   string `json:"storageKey" binding:"required"`
}

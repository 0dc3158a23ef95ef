package domain

import "time"

// AuditAction is the kind of mutating (or sensitive read) action being recorded.
type AuditAction string

const (
	ActionCreate  AuditAction = "CREATE"
	ActionUpdate  AuditAction = "UPDATE"
	ActionDelete  AuditAction = "DELETE"
	ActionView    AuditAction = "VIEW"
	ActionApprove AuditAction = "APPROVE"
	ActionReject  AuditAction = "REJECT"
)

// Entity type labels used in audit entries.
const (
	EntityApplication      = "APPLICATION"
	EntityExpenseItem      = "EXPENSE_ITEM"
	EntityDocument         = "APPLICATION_DOCUMENT"
	EntityEligibilityCheck = "ELIGIBILITY_CHECK"
	EntityDocumentReview   = "DOCUMENT_REVIEW"
	EntityComment          = "COMMENT"
	EntityReview           = "REVIEW"
	EntityUser             = "USER"
)

// AuditLogEntry is one row of the append-only audit trail. Entries are never
// updated or deleted; the repository rejects both with an immutability error.
// Sequence is the insertion order assigned by the adapter, used to break
// timestamp ties.
type AuditLogEntry struct {
	EntryID    string         `json:"entryID"` // Primary Key (UUID)
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Action     AuditAction    `json:"action"`
	ActorID    string         `json:"actorID"`
	Changes    map[string]any `json:"changes,omitempty"`
	ClientIP   *string        `json:"clientIP,omitempty"`
	UserAgent  *string        `json:"userAgent,omitempty"`
	Sequence   int64          `json:"sequence"`
	RecordedAt time.Time      `json:"recordedAt"`
}

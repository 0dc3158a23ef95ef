package models

import "time"

// AuditLogEntry is the storage model of one audit trail row. Changes is the raw
// JSON payload; Sequence is assigned by the adapter on insert.
type AuditLogEntry struct {
	EntryID     string    `json:"entryID"`
	EntityType  string    `json:"entityType"`
	EntityID    string    `json:"entityID"`
	Action      string    `json:"action"`
	ActorID     string    `json:"actorID"`
	ChangesJSON string    `json:"changesJSON"`
	ClientIP    *string   `json:"clientIP,omitempty"`
	UserAgent   *string   `json:"userAgent,omitempty"`
	Sequence    int64     `json:"sequence"`
	RecordedAt  time.Time `json:"recordedAt"`
}

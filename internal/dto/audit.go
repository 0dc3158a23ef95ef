package dto

import (
	"time"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
)

// AuditQueryRequest filters the audit trail. Either an entity reference or a
// date window must be supplied.
type AuditQueryRequest struct {
	EntityType string `form:"entityType"`
	EntityID   string `form:"entityID"`
	From       string `form:"from"`
	To         string `form:"to"`
	Limit      int    `form:"limit"`
	NextToken  string `form:"nextToken"`
}

// AuditLogEntryResponse is the transport view of one audit entry.
type AuditLogEntryResponse struct {
	EntryID    string         `json:"entryID"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Action     string         `json:"action"`
	ActorID    string         `json:"actorID"`
	Changes    map[string]any `json:"changes,omitempty"`
	RecordedAt time.Time      `json:"recordedAt"`
}

// AuditQueryResponse is one page of audit entries, newest first.
type AuditQueryResponse struct {
	Entries   []AuditLogEntryResponse `json:"entries"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToAuditLogEntryResponses converts domain entries to their transport view.
func ToAuditLogEntryResponses(entries []domain.AuditLogEntry) []AuditLogEntryResponse {
	responses := make([]AuditLogEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = AuditLogEntryResponse{
			EntryID:    e.EntryID,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Action:     string(e.Action),
			ActorID:    e.ActorID,
			Changes:    e.Changes,
			RecordedAt: e.RecordedAt,
		}
	}
	return responses
}

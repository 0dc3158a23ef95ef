package mapping

import (
	"encoding/json"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/claimpilot/claims_management_app/internal/models"
)

// ToModelAuditLogEntry converts a domain AuditLogEntry to its storage model,
// serializing the changes payload as JSON.
func ToModelAuditLogEntry(d domain.AuditLogEntry) (models.AuditLogEntry, error) {
	changesJSON := "{}"
	if len(d.Changes) > 0 {
		b, err := json.Marshal(d.Changes)
		if err != nil {
			return models.AuditLogEntry{}, err
		}
		changesJSON = string(b)
	}
	return models.AuditLogEntry{
		EntryID:     d.EntryID,
		EntityType:  d.EntityType,
		EntityID:    d.EntityID,
		Action:      string(d.Action),
		ActorID:     d.ActorID,
		ChangesJSON: changesJSON,
		ClientIP:    d.ClientIP,
		UserAgent:   d.UserAgent,
		Sequence:    d.Sequence,
		RecordedAt:  d.RecordedAt,
	}, nil
}

// ToDomainAuditLogEntry converts a storage AuditLogEntry to the domain. An
// unreadable changes payload maps to nil rather than failing the read.
func ToDomainAuditLogEntry(m models.AuditLogEntry) domain.AuditLogEntry {
	var changes map[string]any
	if m.ChangesJSON != "" && m.ChangesJSON != "{}" {
		_ = json.Unmarshal([]byte(m.ChangesJSON), &changes)
	}
	return domain.AuditLogEntry{
		EntryID:    m.EntryID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     domain.AuditAction(m.Action),
		ActorID:    m.ActorID,
		Changes:    changes,
		ClientIP:   m.ClientIP,
		UserAgent:  m.UserAgent,
		Sequence:   m.Sequence,
		RecordedAt: m.RecordedAt,
	}
}

// ToDomainAuditLogEntrySlice converts a slice of storage AuditLogEntries.
func ToDomainAuditLogEntrySlice(ms []models.AuditLogEntry) []domain.AuditLogEntry {
	ds := make([]domain.AuditLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLogEntry(m)
	}
	return ds
}

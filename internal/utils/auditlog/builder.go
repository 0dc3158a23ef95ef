// Package auditlog builds audit trail entries. The builder keeps the optional
// fields (changes payload, client metadata) typed instead of threading nil
// checks through every call site.
package auditlog

import (
	"time"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/google/uuid"
)

// Builder accumulates one audit entry.
type Builder struct {
	entry domain.AuditLogEntry
}

// NewEntry starts an entry for one action against one entity by one actor.
func NewEntry(entityType, entityID string, action domain.AuditAction, actor domain.Actor) *Builder {
	return &Builder{entry: domain.AuditLogEntry{
		EntryID:    uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actor.UserID,
		ClientIP:   actor.ClientIP,
		UserAgent:  actor.UserAgent,
		RecordedAt: time.Now().UTC(),
	}}
}

// WithChange records one old/new pair in the changes payload.
func (b *Builder) WithChange(field string, oldValue, newValue any) *Builder {
	if b.entry.Changes == nil {
		b.entry.Changes = make(map[string]any)
	}
	b.entry.Changes[field] = map[string]any{"old": oldValue, "new": newValue}
	return b
}

// WithDetail records a flat key/value in the changes payload.
func (b *Builder) WithDetail(field string, value any) *Builder {
	if b.entry.Changes == nil {
		b.entry.Changes = make(map[string]any)
	}
	b.entry.Changes[field] = value
	return b
}

// At overrides the entry timestamp; used when the entry must share the clock
// reading of the mutation it records.
func (b *Builder) At(t time.Time) *Builder {
	b.entry.RecordedAt = t
	return b
}

// Build returns the assembled entry.
func (b *Builder) Build() domain.AuditLogEntry {
	return b.entry
}

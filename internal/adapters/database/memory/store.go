// Package memory implements the persistence provider on process-local maps.
// It exists for tests and throwaway environments; selecting it in config is an
// explicit opt-in and nothing survives a restart.
package memory

import (
	"sync"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
)

// store is the shared state behind all memory repositories. A single lock
// serializes every operation; contention is irrelevant at the scale this
// adapter is meant for.
type store struct {
	mu sync.RWMutex

	applications map[string]domain.Application
	expenseItems map[string]domain.ExpenseItem
	documents    map[string]domain.ApplicationDocument
	eligibility  map[string]domain.EligibilityCheck
	docReviews   map[string]domain.DocumentReview
	comments     map[string]domain.Comment
	reviews      map[string]domain.Review
	users        map[string]domain.User

	auditLog []domain.AuditLogEntry
	auditSeq int64
	refSeq   int64
}

func newStore() *store {
	return &store{
		applications: map[string]domain.Application{},
		expenseItems: map[string]domain.ExpenseItem{},
		documents:    map[string]domain.ApplicationDocument{},
		eligibility:  map[string]domain.EligibilityCheck{},
		docReviews:   map[string]domain.DocumentReview{},
		comments:     map[string]domain.Comment{},
		reviews:      map[string]domain.Review{},
		users:        map[string]domain.User{},
	}
}

// appendAudit assigns the next sequence number and appends the entry. Callers
// must hold the write lock.
func (s *store) appendAudit(entry domain.AuditLogEntry) {
	s.auditSeq++
	entry.Sequence = s.auditSeq
	s.auditLog = append(s.auditLog, entry)
}

package domain_test

import (
	"testing"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    domain.ApplicationStatus
		to      domain.ApplicationStatus
		allowed bool
	}{
		{"pending to under review", domain.StatusPending, domain.StatusUnderReview, true},
		{"under review to approved", domain.StatusUnderReview, domain.StatusApproved, true},
		{"under review to rejected", domain.StatusUnderReview, domain.StatusRejected, true},
		{"under review to clarification", domain.StatusUnderReview, domain.StatusClarificationRequired, true},
		{"clarification back to under review", domain.StatusClarificationRequired, domain.StatusUnderReview, true},
		{"approved to completed", domain.StatusApproved, domain.StatusCompleted, true},
		{"pending straight to approved", domain.StatusPending, domain.StatusApproved, false},
		{"pending straight to rejected", domain.StatusPending, domain.StatusRejected, false},
		{"rejected has no outgoing edges", domain.StatusRejected, domain.StatusUnderReview, false},
		{"completed has no outgoing edges", domain.StatusCompleted, domain.StatusApproved, false},
		{"approved cannot be rejected", domain.StatusApproved, domain.StatusRejected, false},
		{"no self loop", domain.StatusUnderReview, domain.StatusUnderReview, false},
		{"unknown source", domain.ApplicationStatus("BOGUS"), domain.StatusPending, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, domain.CanTransition(tc.from, tc.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, domain.StatusApproved.IsTerminal())
	assert.True(t, domain.StatusRejected.IsTerminal())
	assert.True(t, domain.StatusCompleted.IsTerminal())
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusUnderReview.IsTerminal())
	assert.False(t, domain.StatusClarificationRequired.IsTerminal())
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []domain.ApplicationStatus{
		domain.StatusPending,
		domain.StatusUnderReview,
		domain.StatusClarificationRequired,
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusCompleted,
	} {
		assert.True(t, domain.IsValidStatus(s), string(s))
	}
	assert.False(t, domain.IsValidStatus("IN_LIMBO"))
	assert.False(t, domain.IsValidStatus(""))
}

package refnum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	submittedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "CLM-2026-000042", Format(42, submittedAt))
	assert.Equal(t, "CLM-2026-000001", Format(1, submittedAt))
	// Sequences past the padded width keep growing instead of truncating.
	assert.Equal(t, "CLM-2026-1000000", Format(1000000, submittedAt))
}

func TestFormat_YearFollowsSubmission(t *testing.T) {
	eve := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
	next := time.Date(2027, 1, 1, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, "CLM-2026-000007", Format(7, eve))
	assert.Equal(t, "CLM-2027-000008", Format(8, next))
}

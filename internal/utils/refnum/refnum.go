// Package refnum formats the human-readable reference numbers assigned to
// claim applications.
package refnum

import (
	"fmt"
	"time"
)

const prefix = "CLM"

// Format builds a reference number like CLM-2026-000042 from a reserved
// sequence value and the submission time.
func Format(sequence int64, submittedAt time.Time) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, submittedAt.Year(), sequence)
}

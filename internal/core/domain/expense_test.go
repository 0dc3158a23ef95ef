package domain_test

import (
	"testing"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSumExpenseTotals(t *testing.T) {
	items := []domain.ExpenseItem{
		{AmountClaimed: decimal.NewFromFloat(1200.50), AmountApproved: decimal.NewFromFloat(1000)},
		{AmountClaimed: decimal.NewFromFloat(799.50), AmountApproved: decimal.Zero},
	}

	totals := domain.SumExpenseTotals(items)

	assert.True(t, totals.Claimed.Equal(decimal.NewFromInt(2000)), "claimed was %s", totals.Claimed)
	assert.True(t, totals.Approved.Equal(decimal.NewFromInt(1000)), "approved was %s", totals.Approved)
}

func TestSumExpenseTotals_Empty(t *testing.T) {
	totals := domain.SumExpenseTotals(nil)

	assert.True(t, totals.Claimed.IsZero())
	assert.True(t, totals.Approved.IsZero())
}

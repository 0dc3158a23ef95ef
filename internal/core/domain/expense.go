package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseItem is a single bill line attached to an application. AmountApproved
// stays zero until a reviewer approves the item, and never exceeds AmountClaimed.
type ExpenseItem struct {
	ExpenseID      string          `json:"expenseID"` // Primary Key (UUID)
	ApplicationID  string          `json:"applicationID"`
	BillNumber     string          `json:"billNumber"`
	BillDate       time.Time       `json:"billDate"`
	Description    string          `json:"description"`
	AmountClaimed  decimal.Decimal `json:"amountClaimed"`
	AmountApproved decimal.Decimal `json:"amountApproved"`
	AuditFields
}

// LedgerTotals is the on-demand aggregation of expense items for one application.
type LedgerTotals struct {
	Claimed  decimal.Decimal `json:"claimed"`
	Approved decimal.Decimal `json:"approved"`
}

// SumExpenseTotals recomputes claimed/approved totals over a set of items.
// Totals are never cached so later corrections stay consistent.
func SumExpenseTotals(items []ExpenseItem) LedgerTotals {
	totals := LedgerTotals{Claimed: decimal.Zero, Approved: decimal.Zero}
	for _, item := range items {
		totals.Claimed = totals.Claimed.Add(item.AmountClaimed)
		totals.Approved = totals.Approved.Add(item.AmountApproved)
	}
	return totals
}

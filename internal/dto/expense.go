package dto

import "github.com/shopspring/decimal"

// ApproveExpenseItemRequest sets the approved amount of one expense item.
type ApproveExpenseItemRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

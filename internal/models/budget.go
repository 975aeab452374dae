package models

import "github.com/shopspring/decimal"

// Budget is the spending limit for one month. ID, Amount and Remaining
// are nil when no budget was set for that month.
type Budget struct {
	ID        *int64           `json:"id"`
	Month     int              `json:"month"`
	Year      int              `json:"year"`
	Amount    *decimal.Decimal `json:"amount"`
	Spent     decimal.Decimal  `json:"spent"`
	Remaining *decimal.Decimal `json:"remaining"`
}

// HasAmount reports whether a budget was set.
func (b Budget) HasAmount() bool {
	return b.Amount != nil
}

// BudgetRequest sets the budget of a month.
type BudgetRequest struct {
	Month  int             `json:"month"`
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

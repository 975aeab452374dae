package models

import "github.com/shopspring/decimal"

// TopCategory is the category with the highest spending in a month.
type TopCategory struct {
	Category
	Amount decimal.Decimal `json:"amount"`
}

// MonthlySummary aggregates one month of spending.
type MonthlySummary struct {
	Month            int              `json:"month"`
	Year             int              `json:"year"`
	TotalSpent       decimal.Decimal  `json:"totalSpent"`
	TransactionCount int64            `json:"transactionCount"`
	TopCategory      *TopCategory     `json:"topCategory"`
	BudgetAmount     *decimal.Decimal `json:"budgetAmount"`
	BudgetRemaining  *decimal.Decimal `json:"budgetRemaining"`
}

// CategoryBreakdown is the spending of one category in a month.
type CategoryBreakdown struct {
	Category         Category        `json:"category"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int64           `json:"transactionCount"`
	Percentage       float64         `json:"percentage"`
}

// MonthlyTrend is the spending of one month within a year.
type MonthlyTrend struct {
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	TransactionCount int64           `json:"transactionCount"`
}

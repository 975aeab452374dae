package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Expense represents a financial expense record.
type Expense struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ExpenseRequest is the body of create and update expense calls.
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  int64           `json:"categoryId"`
	Date        Date            `json:"date"`
	Description string          `json:"description,omitempty"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage builds a page and derives the page count from the total.
func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

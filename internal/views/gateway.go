// Package views holds the per-screen state behind both front ends.
//
// A view calls the Gateway, keeps the result and reports failures in the
// shape the screen shows them: field errors, a form message, a toast or a
// per-widget error flag. Front ends only render what a view exposes.
package views

import (
	"context"
	"errors"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/models"
)

// Gateway is the API surface the views depend on. *api.Client
// implements it.
type Gateway interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	ListExpenses(ctx context.Context, f api.ExpenseFilter) (models.Page[models.Expense], error)
	GetExpense(ctx context.Context, id int64) (models.Expense, error)
	CreateExpense(ctx context.Context, req models.ExpenseRequest) (models.Expense, error)
	UpdateExpense(ctx context.Context, id int64, req models.ExpenseRequest) (models.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	GetMonthlyBudget(ctx context.Context, month, year int) (models.Budget, error)
	SetMonthlyBudget(ctx context.Context, req models.BudgetRequest) (models.Budget, error)

	Summary(ctx context.Context, month, year int) (models.MonthlySummary, error)
	ByCategory(ctx context.Context, month, year int) ([]models.CategoryBreakdown, error)
	MonthlyTrend(ctx context.Context, year int) ([]models.MonthlyTrend, error)
}

var _ Gateway = (*api.Client)(nil)

// Generic message for failures the user can only retry.
const msgSomethingWrong = "Something went wrong. Please try again."

// FormError is a form-level message shown above a form after the server
// rejected it.
type FormError struct {
	Message string
	Err     error
}

func (e *FormError) Error() string { return e.Message }
func (e *FormError) Unwrap() error { return e.Err }

// MessageOf returns the form-level message carried by err, if any.
func MessageOf(err error) string {
	var fe *FormError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return ""
}

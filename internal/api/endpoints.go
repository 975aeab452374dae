package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"expense-dashboard/internal/models"
)

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out)
	return out, err
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out)
	return out, err
}

// Me returns the user owning the current token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out)
	return out, err
}

// ExpenseFilter narrows an expense listing. Zero fields are not sent.
type ExpenseFilter struct {
	Category  int64
	StartDate string
	EndDate   string
	Page      int
	Size      int
}

func (f ExpenseFilter) values() url.Values {
	q := url.Values{}
	if f.Category != 0 {
		q.Set("category", strconv.FormatInt(f.Category, 10))
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.Page != 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size != 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	return q
}

// ListExpenses returns one page of the user's expenses, newest first.
func (c *Client) ListExpenses(ctx context.Context, f ExpenseFilter) (models.Page[models.Expense], error) {
	var out models.Page[models.Expense]
	err := c.do(ctx, http.MethodGet, "/expenses", f.values(), nil, &out)
	return out, err
}

// GetExpense returns a single expense.
func (c *Client) GetExpense(ctx context.Context, id int64) (models.Expense, error) {
	var out models.Expense
	err := c.do(ctx, http.MethodGet, expensePath(id), nil, nil, &out)
	return out, err
}

// CreateExpense records a new expense.
func (c *Client) CreateExpense(ctx context.Context, req models.ExpenseRequest) (models.Expense, error) {
	var out models.Expense
	err := c.do(ctx, http.MethodPost, "/expenses", nil, req, &out)
	return out, err
}

// UpdateExpense replaces the fields of an expense.
func (c *Client) UpdateExpense(ctx context.Context, id int64, req models.ExpenseRequest) (models.Expense, error) {
	var out models.Expense
	err := c.do(ctx, http.MethodPut, expensePath(id), nil, req, &out)
	return out, err
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, expensePath(id), nil, nil, nil)
}

func expensePath(id int64) string {
	return "/expenses/" + strconv.FormatInt(id, 10)
}

// ListCategories returns the default categories and the user's own.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out)
	return out, err
}

// CreateCategory adds a custom category.
func (c *Client) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (models.Category, error) {
	var out models.Category
	err := c.do(ctx, http.MethodPost, "/categories", nil, req, &out)
	return out, err
}

// DeleteCategory removes a custom category. Its expenses move to the
// fallback category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func monthQuery(month, year int) url.Values {
	return url.Values{
		"month": {strconv.Itoa(month)},
		"year":  {strconv.Itoa(year)},
	}
}

// GetMonthlyBudget returns the budget of a month. Amount is nil when none
// was set.
func (c *Client) GetMonthlyBudget(ctx context.Context, month, year int) (models.Budget, error) {
	var out models.Budget
	err := c.do(ctx, http.MethodGet, "/budgets/monthly", monthQuery(month, year), nil, &out)
	return out, err
}

// SetMonthlyBudget creates or replaces the budget of a month.
func (c *Client) SetMonthlyBudget(ctx context.Context, req models.BudgetRequest) (models.Budget, error) {
	var out models.Budget
	err := c.do(ctx, http.MethodPut, "/budgets/monthly", nil, req, &out)
	return out, err
}

// Summary returns the spending summary of a month.
func (c *Client) Summary(ctx context.Context, month, year int) (models.MonthlySummary, error) {
	var out models.MonthlySummary
	err := c.do(ctx, http.MethodGet, "/reports/summary", monthQuery(month, year), nil, &out)
	return out, err
}

// ByCategory returns a month's spending per category, largest first.
func (c *Client) ByCategory(ctx context.Context, month, year int) ([]models.CategoryBreakdown, error) {
	var out []models.CategoryBreakdown
	err := c.do(ctx, http.MethodGet, "/reports/by-category", monthQuery(month, year), nil, &out)
	return out, err
}

// MonthlyTrend returns one entry per month of year.
func (c *Client) MonthlyTrend(ctx context.Context, year int) ([]models.MonthlyTrend, error) {
	var out []models.MonthlyTrend
	q := url.Values{"year": {strconv.Itoa(year)}}
	err := c.do(ctx, http.MethodGet, "/reports/monthly-trend", q, nil, &out)
	return out, err
}

package views

import (
	"context"
	"errors"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/toast"
)

const (
	msgExpenseDeleted      = "Expense deleted."
	msgExpenseDeleteFailed = "Could not delete expense. Please try again."
)

// Filters narrow the expense list. Zero values mean no filter.
type Filters struct {
	CategoryID int64
	StartDate  string
	EndDate    string
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f != Filters{}
}

// ExpenseListState is a snapshot of the expense list.
type ExpenseListState struct {
	Loading    bool
	Err        error
	Expenses   []models.Expense
	Page       PageInfo
	Filters    Filters
	Categories []models.Category
}

// ExpenseList pages through the user's expenses. It is not safe for
// concurrent use.
type ExpenseList struct {
	gw     Gateway
	toasts *toast.Center
	state  ExpenseListState
}

// NewExpenseList returns a list on the first page with no filters.
func NewExpenseList(gw Gateway, toasts *toast.Center) *ExpenseList {
	return &ExpenseList{gw: gw, toasts: toasts, state: ExpenseListState{Page: PageInfo{Size: PageSize}}}
}

// Restore sets filters and page without fetching, for front ends that
// carry them in the URL.
func (l *ExpenseList) Restore(f Filters, page int) {
	l.state.Filters = f
	l.state.Page.Page = max(page, 0)
}

// Load fetches the category options and the current page. A failed
// category fetch raises a toast and leaves the options empty, except an
// expired session, which is returned before the page is fetched.
func (l *ExpenseList) Load(ctx context.Context) error {
	cats, err := l.gw.ListCategories(ctx)
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		l.state.Err = err
		l.state.Categories = nil
		return err
	case err != nil:
		l.state.Categories = nil
		l.toasts.Error(msgCategoriesLoadFailed)
	default:
		l.state.Categories = cats
	}
	return l.Refresh(ctx)
}

// Refresh refetches the current page.
func (l *ExpenseList) Refresh(ctx context.Context) error {
	l.state.Loading = true
	l.state.Err = nil
	f := l.state.Filters
	page, err := l.gw.ListExpenses(ctx, api.ExpenseFilter{
		Category:  f.CategoryID,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Page:      l.state.Page.Page,
		Size:      PageSize,
	})
	l.state.Loading = false
	if err != nil {
		l.state.Err = err
		l.state.Expenses = nil
		return err
	}
	l.state.Expenses = page.Content
	l.state.Page = PageInfoOf(page)
	l.state.Page.Size = PageSize
	return nil
}

// Goto shows the zero-based page.
func (l *ExpenseList) Goto(ctx context.Context, page int) error {
	l.state.Page.Page = max(page, 0)
	return l.Refresh(ctx)
}

// Apply replaces the filters and returns to the first page.
func (l *ExpenseList) Apply(ctx context.Context, f Filters) error {
	l.state.Filters = f
	l.state.Page.Page = 0
	return l.Refresh(ctx)
}

// ClearFilters removes every filter and returns to the first page.
func (l *ExpenseList) ClearFilters(ctx context.Context) error {
	return l.Apply(ctx, Filters{})
}

// Delete removes an expense and refetches the page.
func (l *ExpenseList) Delete(ctx context.Context, id int64) error {
	if err := l.gw.DeleteExpense(ctx, id); err != nil {
		l.toasts.Error(msgExpenseDeleteFailed)
		return err
	}
	l.toasts.Success(msgExpenseDeleted)
	return l.Refresh(ctx)
}

// State returns a snapshot of the list.
func (l *ExpenseList) State() ExpenseListState {
	st := l.state
	st.Expenses = append([]models.Expense(nil), st.Expenses...)
	st.Categories = append([]models.Category(nil), st.Categories...)
	return st
}

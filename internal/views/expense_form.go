package views

import (
	"context"
	"fmt"

	"expense-dashboard/internal/models"
	"expense-dashboard/internal/toast"
	"expense-dashboard/internal/validate"
)

const (
	msgCategoriesLoadFailed = "Failed to load categories."
	msgExpenseLoadFailed    = "Failed to load expense."
	msgExpenseAdded         = "Expense added."
	msgExpenseUpdated       = "Expense updated."
	msgExpenseSaveFailed    = "Could not save expense. Please try again."
	msgExpenseUpdateFailed  = "Could not update expense. Please try again."
)

// ExpenseForm creates a new expense, or edits one when ID is set.
type ExpenseForm struct {
	gw     Gateway
	toasts *toast.Center
	today  models.Date

	ID         int64
	Input      validate.ExpenseInput
	Errors     validate.Errors
	Categories []models.Category
}

// NewExpenseForm returns a create form dated today.
func NewExpenseForm(gw Gateway, toasts *toast.Center, today models.Date) *ExpenseForm {
	return &ExpenseForm{
		gw:     gw,
		toasts: toasts,
		today:  today,
		Input:  validate.ExpenseInput{Date: today.String()},
		Errors: validate.Errors{},
	}
}

// Editing reports whether the form edits an existing expense.
func (f *ExpenseForm) Editing() bool {
	return f.ID != 0
}

// Today is the latest date the form accepts.
func (f *ExpenseForm) Today() models.Date {
	return f.today
}

// Load fetches the category options and, when id is not zero, the
// expense to edit. A failed category load leaves the options empty; a
// failed expense load is returned so the caller can leave the form.
func (f *ExpenseForm) Load(ctx context.Context, id int64) error {
	cats, err := f.gw.ListCategories(ctx)
	if err != nil {
		f.toasts.Error(msgCategoriesLoadFailed)
	} else {
		f.Categories = cats
	}

	if id == 0 {
		return nil
	}
	e, err := f.gw.GetExpense(ctx, id)
	if err != nil {
		f.toasts.Error(msgExpenseLoadFailed)
		return fmt.Errorf("load expense %d: %w", id, err)
	}
	f.ID = e.ID
	f.Input = validate.ExpenseInput{
		Amount:      e.Amount.String(),
		CategoryID:  fmt.Sprint(e.Category.ID),
		Date:        e.Date.String(),
		Description: e.Description,
	}
	return nil
}

// Submit validates in and saves it. Field errors are returned as
// validate.Errors; server failures raise a toast. The input is kept
// either way so the form can be shown again.
func (f *ExpenseForm) Submit(ctx context.Context, in validate.ExpenseInput) (models.Expense, error) {
	f.Input = in
	req, errs := validate.Expense(in, f.today)
	f.Errors = errs
	if !errs.OK() {
		return models.Expense{}, errs
	}

	if f.Editing() {
		e, err := f.gw.UpdateExpense(ctx, f.ID, req)
		if err != nil {
			f.toasts.Error(msgExpenseUpdateFailed)
			return models.Expense{}, err
		}
		f.toasts.Success(msgExpenseUpdated)
		return e, nil
	}

	e, err := f.gw.CreateExpense(ctx, req)
	if err != nil {
		f.toasts.Error(msgExpenseSaveFailed)
		return models.Expense{}, err
	}
	f.toasts.Success(msgExpenseAdded)
	return e, nil
}

// Delete removes the expense being edited.
func (f *ExpenseForm) Delete(ctx context.Context) error {
	if !f.Editing() {
		return fmt.Errorf("delete: form is not editing an expense")
	}
	if err := f.gw.DeleteExpense(ctx, f.ID); err != nil {
		f.toasts.Error(msgExpenseDeleteFailed)
		return err
	}
	f.toasts.Success(msgExpenseDeleted)
	return nil
}

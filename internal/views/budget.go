package views

import (
	"context"

	"github.com/shopspring/decimal"

	"expense-dashboard/internal/models"
	"expense-dashboard/internal/toast"
	"expense-dashboard/internal/validate"
)

const (
	msgBudgetUpdated    = "Budget updated."
	msgBudgetSaveFailed = "Could not save budget. Please try again."
)

// BudgetView shows and sets the budget of one month.
type BudgetView struct {
	gw     Gateway
	toasts *toast.Center

	Cursor MonthCursor
	Budget models.Budget
	Err    error
}

// NewBudgetView returns the budget view of the month at cursor.
func NewBudgetView(gw Gateway, toasts *toast.Center, cursor MonthCursor) *BudgetView {
	return &BudgetView{gw: gw, toasts: toasts, Cursor: cursor}
}

// Load fetches the month's budget.
func (v *BudgetView) Load(ctx context.Context) error {
	b, err := v.gw.GetMonthlyBudget(ctx, v.Cursor.Month, v.Cursor.Year)
	v.Err = err
	if err != nil {
		return err
	}
	v.Budget = b
	return nil
}

// Save validates amountText and sets it as the month's budget.
func (v *BudgetView) Save(ctx context.Context, amountText string) error {
	amount, errs := validate.BudgetAmount(amountText)
	if !errs.OK() {
		return errs
	}
	b, err := v.gw.SetMonthlyBudget(ctx, models.BudgetRequest{
		Month:  v.Cursor.Month,
		Year:   v.Cursor.Year,
		Amount: amount,
	})
	if err != nil {
		v.toasts.Error(msgBudgetSaveFailed)
		return err
	}
	v.Budget = b
	v.toasts.Success(msgBudgetUpdated)
	return nil
}

// SpentPercent is spent/amount*100, or 0 when no positive budget is set.
func (v *BudgetView) SpentPercent() float64 {
	if v.Budget.Amount == nil || !v.Budget.Amount.IsPositive() {
		return 0
	}
	pct, _ := v.Budget.Spent.Div(*v.Budget.Amount).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// BarPercent is SpentPercent capped at 100 for drawing the bar.
func (v *BudgetView) BarPercent() float64 {
	return min(v.SpentPercent(), 100)
}

// Tone is the progress bar color.
func (v *BudgetView) Tone() string {
	return ProgressTone(v.SpentPercent())
}

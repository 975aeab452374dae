package handlers

import (
	"fmt"
	"net/http"

	"expense-dashboard/internal/views"
)

// BudgetViewModel is the data passed to the budget template.
type BudgetViewModel struct {
	*views.BudgetView
	Amount string
	FormState
}

// Budget renders the budget of the month in the query, the current month
// by default.
func (h *Handlers) Budget(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	v := views.NewBudgetView(rq.client, rq.toasts, h.cursorOf(r))
	if err := v.Load(r.Context()); h.expired(w, r, rq, err) {
		return
	}

	vm := BudgetViewModel{BudgetView: v}
	if v.Budget.Amount != nil {
		vm.Amount = v.Budget.Amount.StringFixed(2)
	}
	h.render(w, r, rq, "budget.html", "budget", vm)
}

// SetBudget saves the month's budget.
func (h *Handlers) SetBudget(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cursor := h.cursorOf(r)
	v := views.NewBudgetView(rq.client, rq.toasts, cursor)
	amount := r.FormValue("amount")
	err := v.Save(r.Context(), amount)
	if h.expired(w, r, rq, err) {
		return
	}
	if err != nil {
		_ = v.Load(r.Context())
		h.render(w, r, rq, "budget.html", "budget", BudgetViewModel{
			BudgetView:    v,
			Amount:        amount,
			FormState: formError(err),
		})
		return
	}
	h.redirect(w, r, rq, budgetURL(cursor))
}

func budgetURL(c views.MonthCursor) string {
	return fmt.Sprintf("/budget?month=%d&year=%d", c.Month, c.Year)
}

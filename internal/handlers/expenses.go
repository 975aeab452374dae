package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"expense-dashboard/internal/log"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/validate"
	"expense-dashboard/internal/views"
)

// ListViewModel is the data passed to the expense list template.
type ListViewModel struct {
	views.ExpenseListState
	From, To int64
}

// PageURL links to page of the list, keeping the filters.
func (vm ListViewModel) PageURL(page int) string {
	q := url.Values{}
	f := vm.Filters
	if f.CategoryID != 0 {
		q.Set("category", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/expenses"
	}
	return "/expenses?" + q.Encode()
}

// FormViewModel is the data passed to the create/edit form template.
type FormViewModel struct {
	*views.ExpenseForm
	Error string
}

// ListExpenses renders one page of expenses. Filters and page come from
// the query string.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	q := r.URL.Query()

	filters := views.Filters{StartDate: q.Get("startDate"), EndDate: q.Get("endDate")}
	filters.CategoryID, _ = strconv.ParseInt(q.Get("category"), 10, 64)
	page, _ := strconv.Atoi(q.Get("page"))

	list := views.NewExpenseList(rq.client, rq.toasts)
	list.Restore(filters, page)
	err := list.Load(r.Context())
	if h.expired(w, r, rq, err) {
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list expenses", log.FieldError, err)
	}

	vm := ListViewModel{ExpenseListState: list.State()}
	vm.From, vm.To = vm.Page.Range()
	h.render(w, r, rq, "list.html", "expenses", vm)
}

// CreateExpenseForm renders the form to create a new expense.
func (h *Handlers) CreateExpenseForm(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	form := views.NewExpenseForm(rq.client, rq.toasts, models.DateOf(h.now()))
	if err := form.Load(r.Context(), 0); h.expired(w, r, rq, err) {
		return
	}
	h.render(w, r, rq, "create.html", "expenses", FormViewModel{ExpenseForm: form})
}

// EditExpenseForm renders the form to edit an existing expense.
func (h *Handlers) EditExpenseForm(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	form := views.NewExpenseForm(rq.client, rq.toasts, models.DateOf(h.now()))
	if err := form.Load(r.Context(), id); err != nil {
		if !h.expired(w, r, rq, err) {
			h.redirect(w, r, rq, "/expenses")
		}
		return
	}
	h.render(w, r, rq, "create.html", "expenses", FormViewModel{ExpenseForm: form})
}

// CreateExpense handles the creation of a new expense.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	h.saveExpense(w, r, 0)
}

// UpdateExpense handles the update of an existing expense.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	h.saveExpense(w, r, id)
}

func (h *Handlers) saveExpense(w http.ResponseWriter, r *http.Request, id int64) {
	rq := h.begin(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := views.NewExpenseForm(rq.client, rq.toasts, models.DateOf(h.now()))
	if cats, err := rq.client.ListCategories(r.Context()); err == nil {
		form.Categories = cats
	}
	form.ID = id

	_, err := form.Submit(r.Context(), parseForm(r))
	if h.expired(w, r, rq, err) {
		return
	}
	if err != nil {
		var fields validate.Errors
		if !errors.As(err, &fields) {
			h.logger.WarnContext(r.Context(), "Failed to save expense", log.FieldExpenseID, id, log.FieldError, err)
		}
		h.render(w, r, rq, "create.html", "expenses", FormViewModel{ExpenseForm: form})
		return
	}
	h.redirect(w, r, rq, "/expenses")
}

// DeleteExpense removes an expense and returns to the list.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	form := views.NewExpenseForm(rq.client, rq.toasts, models.DateOf(h.now()))
	form.ID = id
	if err := form.Delete(r.Context()); h.expired(w, r, rq, err) {
		return
	}
	h.redirect(w, r, rq, "/expenses")
}

func parseForm(r *http.Request) validate.ExpenseInput {
	return validate.ExpenseInput{
		Amount:      r.FormValue("amount"),
		CategoryID:  r.FormValue("categoryId"),
		Date:        r.FormValue("date"),
		Description: r.FormValue("description"),
	}
}

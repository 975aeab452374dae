package server

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"expense-dashboard/internal/log"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/storage"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxDescription is wider than the form limit so older clients keep
	// working.
	maxDescription = 500
)

// maxAmount bounds a single amount so cents and monthly sums stay well
// inside int64.
var maxAmount = decimal.RequireFromString("9999999999.99")

// checkAmount returns the validation message for an expense or budget
// amount, or "" when it is acceptable.
func checkAmount(amount decimal.Decimal) string {
	switch {
	case !amount.IsPositive():
		return "Amount must be greater than 0"
	case !amount.Equal(amount.Round(2)):
		return "Amount can have at most 2 decimal places"
	case amount.GreaterThan(maxAmount):
		return "Amount must be at most 9999999999.99"
	}
	return ""
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := storage.ExpenseFilter{Size: defaultPageSize}

	if v := q.Get("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, models.CodeValidation, "Invalid category")
			return
		}
		f.CategoryID = id
	}
	for _, p := range []struct {
		name string
		dst  *string
	}{{"startDate", &f.StartDate}, {"endDate", &f.EndDate}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		if _, err := models.ParseDate(v); err != nil {
			writeError(w, http.StatusBadRequest, models.CodeValidation, "Dates must use the YYYY-MM-DD format")
			return
		}
		*p.dst = v
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			writeError(w, http.StatusBadRequest, models.CodeValidation, "Page must be zero or greater")
			return
		}
		f.Page = page
	}
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			writeError(w, http.StatusBadRequest, models.CodeValidation, "Size must be at least 1")
			return
		}
		f.Size = min(size, maxPageSize)
	}

	items, total, err := s.db.ListExpenses(r.Context(), userIDFrom(r), f)
	if err != nil {
		s.storageError(w, r, "list expenses", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewPage(items, f.Page, f.Size, total))
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.db.GetExpense(r.Context(), userIDFrom(r), id)
	if err != nil {
		s.storageError(w, r, "get expense", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	req, ok := s.expenseRequest(w, r)
	if !ok {
		return
	}
	e, err := s.db.CreateExpense(r.Context(), userIDFrom(r), req)
	if err != nil {
		s.storageError(w, r, "create expense: category", err)
		return
	}
	s.logger.InfoContext(r.Context(), "Expense created",
		log.FieldUserID, userIDFrom(r),
		log.FieldExpenseID, e.ID,
	)
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := s.expenseRequest(w, r)
	if !ok {
		return
	}
	e, err := s.db.UpdateExpense(r.Context(), userIDFrom(r), id, req)
	if err != nil {
		s.storageError(w, r, "update expense", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteExpense(r.Context(), userIDFrom(r), id); err != nil {
		s.storageError(w, r, "delete expense", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// expenseRequest decodes and checks a create or update body.
func (s *Server) expenseRequest(w http.ResponseWriter, r *http.Request) (models.ExpenseRequest, bool) {
	var req models.ExpenseRequest
	if !decodeBody(w, r, &req) {
		return req, false
	}
	req.Description = strings.TrimSpace(req.Description)
	if msg := s.checkExpense(req); msg != "" {
		writeError(w, http.StatusBadRequest, models.CodeValidation, msg)
		return req, false
	}
	return req, true
}

func (s *Server) checkExpense(req models.ExpenseRequest) string {
	if msg := checkAmount(req.Amount); msg != "" {
		return msg
	}
	switch {
	case req.CategoryID <= 0:
		return "Category is required"
	case req.Date.IsZero():
		return "Date is required"
	case req.Date.After(models.DateOf(s.now())):
		return "Date cannot be in the future"
	case utf8.RuneCountInString(req.Description) > maxDescription:
		return "Description must be 500 characters or fewer"
	}
	return ""
}

package server

import (
	"errors"
	"net/http"

	"expense-dashboard/internal/models"
	"expense-dashboard/internal/storage"
)

const (
	minBudgetYear = 2000
	maxBudgetYear = 2100
)

func (s *Server) getBudget(w http.ResponseWriter, r *http.Request) {
	month, year, ok := s.monthParams(w, r)
	if !ok {
		return
	}
	b, err := s.budget(r, month, year)
	if err != nil {
		s.internalError(w, r, "get budget", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) setBudget(w http.ResponseWriter, r *http.Request) {
	var req models.BudgetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	switch {
	case req.Month < 1 || req.Month > 12:
		writeError(w, http.StatusBadRequest, models.CodeValidation, "Month must be between 1 and 12")
		return
	case req.Year < minBudgetYear || req.Year > maxBudgetYear:
		writeError(w, http.StatusBadRequest, models.CodeValidation, "Year must be between 2000 and 2100")
		return
	}
	if msg := checkAmount(req.Amount); msg != "" {
		writeError(w, http.StatusBadRequest, models.CodeValidation, msg)
		return
	}

	if _, err := s.db.SetBudget(r.Context(), userIDFrom(r), req.Month, req.Year, req.Amount); err != nil {
		s.internalError(w, r, "set budget", err)
		return
	}
	b, err := s.budget(r, req.Month, req.Year)
	if err != nil {
		s.internalError(w, r, "get budget", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// budget combines the stored amount with the month's spending. Amount and
// Remaining stay nil when no budget was set.
func (s *Server) budget(r *http.Request, month, year int) (models.Budget, error) {
	userID := userIDFrom(r)
	spent, _, err := s.db.MonthTotals(r.Context(), userID, month, year)
	if err != nil {
		return models.Budget{}, err
	}
	b := models.Budget{Month: month, Year: year, Spent: spent}

	rec, err := s.db.GetBudget(r.Context(), userID, month, year)
	if errors.Is(err, storage.ErrNotFound) {
		return b, nil
	}
	if err != nil {
		return models.Budget{}, err
	}
	remaining := rec.Amount.Sub(spent)
	b.ID = &rec.ID
	b.Amount = &rec.Amount
	b.Remaining = &remaining
	return b, nil
}

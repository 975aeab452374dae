package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"expense-dashboard/internal/models"
	"expense-dashboard/internal/storage"
)

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := s.monthParams(w, r)
	if !ok {
		return
	}
	userID := userIDFrom(r)

	total, count, err := s.db.MonthTotals(r.Context(), userID, month, year)
	if err != nil {
		s.internalError(w, r, "month totals", err)
		return
	}
	out := models.MonthlySummary{
		Month:            month,
		Year:             year,
		TotalSpent:       total,
		TransactionCount: count,
	}

	totals, err := s.db.CategoryTotals(r.Context(), userID, month, year)
	if err != nil {
		s.internalError(w, r, "category totals", err)
		return
	}
	if len(totals) > 0 {
		out.TopCategory = &models.TopCategory{Category: totals[0].Category, Amount: totals[0].Total}
	}

	rec, err := s.db.GetBudget(r.Context(), userID, month, year)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		s.internalError(w, r, "get budget", err)
		return
	default:
		remaining := rec.Amount.Sub(total)
		out.BudgetAmount = &rec.Amount
		out.BudgetRemaining = &remaining
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) byCategory(w http.ResponseWriter, r *http.Request) {
	month, year, ok := s.monthParams(w, r)
	if !ok {
		return
	}
	userID := userIDFrom(r)

	total, _, err := s.db.MonthTotals(r.Context(), userID, month, year)
	if err != nil {
		s.internalError(w, r, "month totals", err)
		return
	}
	totals, err := s.db.CategoryTotals(r.Context(), userID, month, year)
	if err != nil {
		s.internalError(w, r, "category totals", err)
		return
	}

	out := make([]models.CategoryBreakdown, 0, len(totals))
	for _, t := range totals {
		out = append(out, models.CategoryBreakdown{
			Category:         t.Category,
			TotalAmount:      t.Total,
			TransactionCount: t.Count,
			Percentage:       percentOf(t.Total, total),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) monthlyTrend(w http.ResponseWriter, r *http.Request) {
	year := s.now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, models.CodeValidation, "Year must be a number")
			return
		}
		year = y
	}
	trend, err := s.db.YearTrend(r.Context(), userIDFrom(r), year)
	if err != nil {
		s.internalError(w, r, "year trend", err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

// percentOf returns part as a percentage of whole, rounded half-up to
// one decimal place.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	pct, _ := part.Mul(decimal.NewFromInt(100)).DivRound(whole, 1).Float64()
	return pct
}

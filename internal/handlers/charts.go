package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"expense-dashboard/internal/charts"
	"expense-dashboard/internal/colors"
	"expense-dashboard/internal/log"
)

// BreakdownChart serves the month's category breakdown as a PNG pie.
func (h *Handlers) BreakdownChart(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	cursor := h.cursorOf(r)

	items, err := rq.client.ByCategory(r.Context(), cursor.Month, cursor.Year)
	if err != nil {
		h.chartError(w, r, err)
		return
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Category.Name)
	}

	png, err := charts.Breakdown(items, colors.ColorMap(names))
	if err != nil {
		h.chartError(w, r, err)
		return
	}
	writePNG(w, png)
}

// TrendChart serves the year's monthly spending as a PNG bar chart.
func (h *Handlers) TrendChart(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	year := h.now().Year()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		year = y
	}

	items, err := rq.client.MonthlyTrend(r.Context(), year)
	if err != nil {
		h.chartError(w, r, err)
		return
	}
	png, err := charts.Trend(items, year)
	if err != nil {
		h.chartError(w, r, err)
		return
	}
	writePNG(w, png)
}

func (h *Handlers) chartError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, charts.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.logger.WarnContext(r.Context(), "Failed to render chart", log.FieldError, err)
	http.Error(w, "Chart unavailable", http.StatusBadGateway)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

package handlers

import (
	"errors"
	"net/http"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/log"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/views"
)

// BreakdownItem is one category row of the breakdown widget.
type BreakdownItem struct {
	models.CategoryBreakdown
	Color string
}

// DashboardViewModel is the data passed to the dashboard template.
type DashboardViewModel struct {
	views.DashboardState
	MonthLabel     string
	Prev           views.MonthCursor
	Next           views.MonthCursor
	IsCurrentMonth bool
	RemainingTone  views.Tone
	BreakdownItems []BreakdownItem
	HasTrend       bool
}

func (h *Handlers) dashboardModel(st views.DashboardState) DashboardViewModel {
	now := views.CursorOf(h.now())
	vm := DashboardViewModel{
		DashboardState: st,
		MonthLabel:     st.Cursor.Label(),
		Prev:           st.Cursor.Shift(-1),
		Next:           st.Cursor.Shift(1),
		IsCurrentMonth: st.Cursor == now,
		RemainingTone:  views.BudgetRemainingTone(st.Summary.Data),
	}
	for _, b := range st.Breakdown.Data {
		vm.BreakdownItems = append(vm.BreakdownItems, BreakdownItem{CategoryBreakdown: b, Color: st.Colors[b.Category.Name]})
	}
	for _, t := range st.Trend.Data {
		if t.TotalSpent.IsPositive() {
			vm.HasTrend = true
			break
		}
	}
	return vm
}

// unauthorizedSlot reports whether any widget failed on a rejected token.
func unauthorizedSlot(st views.DashboardState) error {
	for _, err := range []error{st.Summary.Err, st.Breakdown.Err, st.Trend.Err, st.Recent.Err} {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
	}
	return nil
}

// Dashboard renders the monthly overview. The four widgets load
// concurrently and fail independently.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)

	d := views.NewDashboard(r.Context(), rq.client, h.cursorOf(r))
	defer d.Close()
	d.Load()
	st := d.Snapshot()

	if h.expired(w, r, rq, unauthorizedSlot(st)) {
		return
	}
	for _, wd := range views.Widgets {
		if err := slotErr(st, wd); err != nil {
			h.logger.WarnContext(r.Context(), "Dashboard widget failed",
				log.FieldWidget, string(wd),
				log.FieldMonth, st.Cursor.Month,
				log.FieldYear, st.Cursor.Year,
				log.FieldError, err,
			)
		}
	}

	h.render(w, r, rq, "dashboard.html", "dashboard", h.dashboardModel(st))
}

// Widget reloads a single dashboard widget and renders only its
// fragment. It backs the Retry buttons.
func (h *Handlers) Widget(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	widget := views.Widget(r.PathValue("widget"))

	d := views.NewDashboard(r.Context(), rq.client, h.cursorOf(r))
	defer d.Close()
	if err := d.Retry(widget); err != nil {
		http.NotFound(w, r)
		return
	}
	st := d.Snapshot()
	if h.expired(w, r, rq, slotErr(st, widget)) {
		return
	}

	h.renderTemplate(w, r, rq, "dashboard.html", "widget-"+string(widget), "dashboard", h.dashboardModel(st))
}

func slotErr(st views.DashboardState, w views.Widget) error {
	switch w {
	case views.WidgetSummary:
		return st.Summary.Err
	case views.WidgetBreakdown:
		return st.Breakdown.Err
	case views.WidgetTrend:
		return st.Trend.Err
	case views.WidgetRecent:
		return st.Recent.Err
	}
	return nil
}

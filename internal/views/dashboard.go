package views

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/colors"
	"expense-dashboard/internal/models"
)

// RecentSize is the number of expenses in the dashboard's recent list.
const RecentSize = 5

// Widget names one independently loaded dashboard panel.
type Widget string

const (
	WidgetSummary   Widget = "summary"
	WidgetBreakdown Widget = "breakdown"
	WidgetTrend     Widget = "trend"
	WidgetRecent    Widget = "recent"
)

// Widgets lists every dashboard widget in display order.
var Widgets = []Widget{WidgetSummary, WidgetBreakdown, WidgetTrend, WidgetRecent}

// Slot is the load state of one widget.
type Slot[T any] struct {
	Loading bool
	Err     error
	Data    T
}

// Failed reports whether the last load of the slot failed.
func (s Slot[T]) Failed() bool {
	return s.Err != nil
}

// DashboardState is a snapshot of the dashboard.
type DashboardState struct {
	Cursor    MonthCursor
	Summary   Slot[models.MonthlySummary]
	Breakdown Slot[[]models.CategoryBreakdown]
	Trend     Slot[[]models.MonthlyTrend]
	Recent    Slot[[]models.Expense]

	// Colors maps each breakdown category name to its chart color.
	Colors map[string]string
}

// Dashboard loads the four widgets of the monthly overview.
//
// Every request of a slot is stamped with a generation. A response whose
// generation is no longer the latest for its slot is dropped, and
// starting a newer request cancels the older one. Close cancels whatever
// is still in flight.
type Dashboard struct {
	gw     Gateway
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	state   DashboardState
	gens    map[Widget]uint64
	cancels map[Widget]context.CancelFunc
	closed  bool
}

// NewDashboard returns a dashboard showing cursor. Requests run under
// ctx until Close.
func NewDashboard(ctx context.Context, gw Gateway, cursor MonthCursor) *Dashboard {
	ctx, cancel := context.WithCancel(ctx)
	return &Dashboard{
		gw:      gw,
		ctx:     ctx,
		cancel:  cancel,
		state:   DashboardState{Cursor: cursor},
		gens:    make(map[Widget]uint64),
		cancels: make(map[Widget]context.CancelFunc),
	}
}

// Cursor returns the month on display.
func (d *Dashboard) Cursor() MonthCursor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Cursor
}

// Load fetches every widget for the current cursor and returns once all
// of them settled. Failures are recorded per slot.
func (d *Dashboard) Load() {
	var g errgroup.Group
	for _, w := range Widgets {
		g.Go(func() error {
			d.load(w)
			return nil
		})
	}
	_ = g.Wait()
}

// Shift moves the cursor by delta months and reloads.
func (d *Dashboard) Shift(delta int) {
	d.mu.Lock()
	d.state.Cursor = d.state.Cursor.Shift(delta)
	d.mu.Unlock()
	d.Load()
}

// SetCursor jumps to cursor and reloads.
func (d *Dashboard) SetCursor(cursor MonthCursor) {
	d.mu.Lock()
	d.state.Cursor = cursor
	d.mu.Unlock()
	d.Load()
}

// Retry reloads a single widget.
func (d *Dashboard) Retry(w Widget) error {
	switch w {
	case WidgetSummary, WidgetBreakdown, WidgetTrend, WidgetRecent:
		d.load(w)
		return nil
	}
	return fmt.Errorf("unknown widget %q", w)
}

// Snapshot returns a copy of the dashboard state.
func (d *Dashboard) Snapshot() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.state
	st.Breakdown.Data = append([]models.CategoryBreakdown(nil), st.Breakdown.Data...)
	st.Trend.Data = append([]models.MonthlyTrend(nil), st.Trend.Data...)
	st.Recent.Data = append([]models.Expense(nil), st.Recent.Data...)
	names := make([]string, len(st.Breakdown.Data))
	for i, b := range st.Breakdown.Data {
		names[i] = b.Category.Name
	}
	st.Colors = colors.ColorMap(names)
	return st
}

// Close cancels in-flight requests and settles their slots. Responses
// arriving afterwards are dropped.
func (d *Dashboard) Close() {
	d.mu.Lock()
	d.closed = true
	d.state.Summary.Loading = false
	d.state.Breakdown.Loading = false
	d.state.Trend.Loading = false
	d.state.Recent.Loading = false
	d.mu.Unlock()
	d.cancel()
}

func (d *Dashboard) load(w Widget) {
	switch w {
	case WidgetSummary:
		run(d, w, func(s *DashboardState) *Slot[models.MonthlySummary] { return &s.Summary },
			func(ctx context.Context, c MonthCursor) (models.MonthlySummary, error) {
				return d.gw.Summary(ctx, c.Month, c.Year)
			})
	case WidgetBreakdown:
		run(d, w, func(s *DashboardState) *Slot[[]models.CategoryBreakdown] { return &s.Breakdown },
			func(ctx context.Context, c MonthCursor) ([]models.CategoryBreakdown, error) {
				return d.gw.ByCategory(ctx, c.Month, c.Year)
			})
	case WidgetTrend:
		run(d, w, func(s *DashboardState) *Slot[[]models.MonthlyTrend] { return &s.Trend },
			func(ctx context.Context, c MonthCursor) ([]models.MonthlyTrend, error) {
				return d.gw.MonthlyTrend(ctx, c.Year)
			})
	case WidgetRecent:
		run(d, w, func(s *DashboardState) *Slot[[]models.Expense] { return &s.Recent },
			func(ctx context.Context, _ MonthCursor) ([]models.Expense, error) {
				page, err := d.gw.ListExpenses(ctx, api.ExpenseFilter{Page: 0, Size: RecentSize})
				return page.Content, err
			})
	}
}

// begin issues a new generation for w and cancels the request it
// supersedes. Must be called with mu held.
func (d *Dashboard) begin(w Widget) (context.Context, uint64) {
	if cancel := d.cancels[w]; cancel != nil {
		cancel()
	}
	ctx, cancel := context.WithCancel(d.ctx)
	d.gens[w]++
	d.cancels[w] = cancel
	return ctx, d.gens[w]
}

// run fetches one slot and applies the result unless a newer request for
// the same slot was issued meanwhile.
func run[T any](d *Dashboard, w Widget, slot func(*DashboardState) *Slot[T], fetch func(context.Context, MonthCursor) (T, error)) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	ctx, gen := d.begin(w)
	cursor := d.state.Cursor
	s := slot(&d.state)
	s.Loading = true
	s.Err = nil
	d.mu.Unlock()

	data, err := fetch(ctx, cursor)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.gens[w] != gen {
		return
	}
	d.cancels[w]()
	delete(d.cancels, w)

	s = slot(&d.state)
	s.Loading = false
	if err != nil {
		var zero T
		s.Err = err
		s.Data = zero
		return
	}
	s.Data = data
}

// Tone is the color cue of a figure.
type Tone string

const (
	ToneNone     Tone = ""
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// BudgetRemainingTone colors the remaining budget green when it is not
// negative and red otherwise. Months without a budget get no tone.
func BudgetRemainingTone(s models.MonthlySummary) Tone {
	if s.BudgetRemaining == nil {
		return ToneNone
	}
	if s.BudgetRemaining.IsNegative() {
		return ToneNegative
	}
	return TonePositive
}

// Progress tones of the budget bar.
const (
	ProgressSuccess = "success"
	ProgressWarning = "warning"
	ProgressDanger  = "danger"
)

// ProgressTone maps a spent percentage to the budget bar color.
func ProgressTone(pct float64) string {
	switch {
	case pct > 100:
		return ProgressDanger
	case pct > 75:
		return ProgressWarning
	default:
		return ProgressSuccess
	}
}

// Package charts renders dashboard charts as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"expense-dashboard/internal/colors"
	"expense-dashboard/internal/format"
	"expense-dashboard/internal/models"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("charts: no data")

const (
	width  = 800
	height = 400
)

var background = chart.Style{
	Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
	FillColor: chart.ColorWhite,
}

// Breakdown draws the category breakdown as a pie chart. Slices take the
// color named in colorOf, falling back to the category's hash color.
func Breakdown(items []models.CategoryBreakdown, colorOf map[string]string) ([]byte, error) {
	values := make([]chart.Value, 0, len(items))
	for _, it := range items {
		amount := it.TotalAmount.InexactFloat64()
		if amount <= 0 {
			continue
		}
		hex, ok := colorOf[it.Category.Name]
		if !ok {
			hex = colors.HashColor(it.Category.Name)
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", it.Category.Name, it.Percentage),
			Value: amount,
			Style: chart.Style{FillColor: fromHex(hex), StrokeColor: chart.ColorWhite},
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := chart.PieChart{
		Width:      height,
		Height:     height,
		Values:     values,
		Background: background,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render breakdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Trend draws monthly spending of year as a bar chart, one bar per
// month.
func Trend(items []models.MonthlyTrend, year int) ([]byte, error) {
	bars := make([]chart.Value, 0, len(items))
	nonZero := false
	for _, it := range items {
		amount := it.TotalSpent.InexactFloat64()
		if amount > 0 {
			nonZero = true
		}
		bars = append(bars, chart.Value{
			Label: format.ShortMonthName(it.Month),
			Value: amount,
			Style: chart.Style{FillColor: fromHex(colors.Palette[1]), StrokeColor: fromHex(colors.Palette[1])},
		})
	}
	if !nonZero {
		return nil, ErrNoData
	}

	bar := chart.BarChart{
		Title:      fmt.Sprintf("Spending %d", year),
		Width:      width,
		Height:     height,
		BarWidth:   40,
		Bars:       bars,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}, FillColor: chart.ColorWhite},
	}
	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render trend: %w", err)
	}
	return buf.Bytes(), nil
}

func fromHex(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

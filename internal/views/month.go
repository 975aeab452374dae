package views

import (
	"strconv"
	"time"

	"expense-dashboard/internal/format"
)

// MonthCursor selects the month the dashboard shows.
type MonthCursor struct {
	Month int
	Year  int
}

// CursorOf returns the cursor for the month containing t.
func CursorOf(t time.Time) MonthCursor {
	return MonthCursor{Month: int(t.Month()), Year: t.Year()}
}

// Shift moves the cursor by delta months across year boundaries.
func (c MonthCursor) Shift(delta int) MonthCursor {
	idx := c.Year*12 + (c.Month - 1) + delta
	year, month := idx/12, idx%12
	if month < 0 {
		month += 12
		year--
	}
	return MonthCursor{Month: month + 1, Year: year}
}

// Label is the heading shown between the navigation arrows.
func (c MonthCursor) Label() string {
	return format.MonthName(c.Month) + " " + strconv.Itoa(c.Year)
}

// Valid reports whether the month is within 1-12.
func (c MonthCursor) Valid() bool {
	return c.Month >= 1 && c.Month <= 12
}

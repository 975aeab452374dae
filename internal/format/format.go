// Package format renders amounts, dates and month names for display.
package format

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"expense-dashboard/internal/models"
)

// Currency formats an amount as US dollars, e.g. "$1,234.50" or "-$3.00".
func Currency(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// CurrencyPtr formats an optional amount, returning fallback when nil.
func CurrencyPtr(amount *decimal.Decimal, fallback string) string {
	if amount == nil {
		return fallback
	}
	return Currency(*amount)
}

// Date formats a day as "Mar 7, 2026".
func Date(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2, 2006")
}

// ShortDate formats a day as "Mar 7".
func ShortDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2")
}

// MonthName returns the full English name of month 1-12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

// ShortMonthName returns the three-letter name of month 1-12.
func ShortMonthName(month int) string {
	name := MonthName(month)
	if len(name) < 3 {
		return name
	}
	return name[:3]
}

// Today returns now's calendar day as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(models.DateLayout)
}

// Truncate shortens s to max runes, appending "..." when it was cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

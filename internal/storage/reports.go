package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"expense-dashboard/internal/models"
)

// CategoryTotal is the spending of one category in a month.
type CategoryTotal struct {
	Category models.Category
	Total    decimal.Decimal
	Count    int64
}

// MonthTotals returns the sum and number of the user's expenses in a
// month.
func (db *DB) MonthTotals(ctx context.Context, userID int64, month, year int) (decimal.Decimal, int64, error) {
	start, end := monthRange(month, year)
	var cents, count int64
	err := db.conn.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0), COUNT(*)
		FROM expenses
		WHERE user_id = ? AND date >= ? AND date < ?`,
		userID, start, end,
	).Scan(&cents, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("month totals: %w", err)
	}
	return fromCents(cents), count, nil
}

// CategoryTotals returns the user's spending per category in a month,
// largest first.
func (db *DB) CategoryTotals(ctx context.Context, userID int64, month, year int) ([]CategoryTotal, error) {
	start, end := monthRange(month, year)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT c.id, c.name, c.icon, c.is_default, SUM(e.amount_cents) AS total, COUNT(e.id)
		FROM expenses e JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = ? AND e.date >= ? AND e.date < ?
		GROUP BY c.id, c.name, c.icon, c.is_default
		ORDER BY total DESC, c.id`,
		userID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	totals := []CategoryTotal{}
	for rows.Next() {
		var (
			t     CategoryTotal
			cents int64
		)
		if err := rows.Scan(&t.Category.ID, &t.Category.Name, &t.Category.Icon, &t.Category.IsDefault, &cents, &t.Count); err != nil {
			return nil, err
		}
		t.Total = fromCents(cents)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// YearTrend returns twelve entries, one per month of year, with zero
// totals for months without expenses.
func (db *DB) YearTrend(ctx context.Context, userID int64, year int) ([]models.MonthlyTrend, error) {
	start, _ := monthRange(1, year)
	end, _ := monthRange(1, year+1)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT CAST(substr(date, 6, 2) AS INTEGER) AS m, SUM(amount_cents), COUNT(*)
		FROM expenses
		WHERE user_id = ? AND date >= ? AND date < ?
		GROUP BY m`,
		userID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("year trend: %w", err)
	}
	defer rows.Close()

	trend := make([]models.MonthlyTrend, 12)
	for i := range trend {
		trend[i] = models.MonthlyTrend{Month: i + 1, Year: year, TotalSpent: decimal.Zero}
	}
	for rows.Next() {
		var month int
		var cents, count int64
		if err := rows.Scan(&month, &cents, &count); err != nil {
			return nil, err
		}
		if month < 1 || month > 12 {
			continue
		}
		trend[month-1].TotalSpent = fromCents(cents)
		trend[month-1].TransactionCount = count
	}
	return trend, rows.Err()
}

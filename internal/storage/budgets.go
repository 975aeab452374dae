package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetRecord is the stored budget of one month.
type BudgetRecord struct {
	ID     int64
	Month  int
	Year   int
	Amount decimal.Decimal
}

// GetBudget returns the user's budget for a month, or ErrNotFound when
// none was set.
func (db *DB) GetBudget(ctx context.Context, userID int64, month, year int) (BudgetRecord, error) {
	b := BudgetRecord{Month: month, Year: year}
	var cents int64
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, amount_cents FROM budgets WHERE user_id = ? AND month = ? AND year = ?",
		userID, month, year,
	).Scan(&b.ID, &cents)
	if err != nil {
		return BudgetRecord{}, notFound(err)
	}
	b.Amount = fromCents(cents)
	return b, nil
}

// SetBudget creates or replaces the user's budget for a month.
func (db *DB) SetBudget(ctx context.Context, userID int64, month, year int, amount decimal.Decimal) (BudgetRecord, error) {
	now := db.timestamp()
	b := BudgetRecord{Month: month, Year: year, Amount: fromCents(toCents(amount))}
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO budgets (user_id, month, year, amount_cents, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, month, year)
		DO UPDATE SET amount_cents = excluded.amount_cents, updated_at = excluded.updated_at
		RETURNING id`,
		userID, month, year, toCents(amount), now, now,
	).Scan(&b.ID)
	if err != nil {
		return BudgetRecord{}, fmt.Errorf("upsert budget: %w", err)
	}
	return b, nil
}

package storage

import (
	"context"
	"fmt"
	"strings"

	"expense-dashboard/internal/models"
)

// ExpenseFilter narrows ListExpenses. Zero values mean no filter; dates
// are inclusive YYYY-MM-DD bounds.
type ExpenseFilter struct {
	CategoryID int64
	StartDate  string
	EndDate    string
	Page       int
	Size       int
}

const expenseColumns = `
	e.id, e.amount_cents, e.date, e.description, e.created_at, e.updated_at,
	c.id, c.name, c.icon, c.is_default`

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (models.Expense, error) {
	var (
		e                models.Expense
		cents            int64
		date             string
		created, updated string
	)
	if err := s.Scan(&e.ID, &cents, &date, &e.Description, &created, &updated,
		&e.Category.ID, &e.Category.Name, &e.Category.Icon, &e.Category.IsDefault); err != nil {
		return models.Expense{}, err
	}
	d, err := models.ParseDate(date)
	if err != nil {
		return models.Expense{}, err
	}
	e.Amount = fromCents(cents)
	e.Date = d
	e.CreatedAt = parseTimestamp(created)
	e.UpdatedAt = parseTimestamp(updated)
	return e, nil
}

// CreateExpense inserts a new expense. It returns ErrNotFound when the
// category is not visible to the user.
func (db *DB) CreateExpense(ctx context.Context, userID int64, req models.ExpenseRequest) (models.Expense, error) {
	if _, err := db.GetCategory(ctx, userID, req.CategoryID); err != nil {
		return models.Expense{}, err
	}

	now := db.timestamp()
	result, err := db.conn.ExecContext(ctx, `
		INSERT INTO expenses (user_id, category_id, amount_cents, date, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, req.CategoryID, toCents(req.Amount), req.Date.String(), req.Description, now, now,
	)
	if err != nil {
		return models.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Expense{}, err
	}
	return db.GetExpense(ctx, userID, id)
}

// GetExpense retrieves a single expense owned by the user.
func (db *DB) GetExpense(ctx context.Context, userID, id int64) (models.Expense, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e JOIN categories c ON c.id = e.category_id
		WHERE e.id = ? AND e.user_id = ?`, id, userID)

	e, err := scanExpense(row)
	if err != nil {
		return models.Expense{}, notFound(err)
	}
	return e, nil
}

// UpdateExpense replaces the fields of an expense owned by the user.
func (db *DB) UpdateExpense(ctx context.Context, userID, id int64, req models.ExpenseRequest) (models.Expense, error) {
	if _, err := db.GetCategory(ctx, userID, req.CategoryID); err != nil {
		return models.Expense{}, err
	}

	result, err := db.conn.ExecContext(ctx, `
		UPDATE expenses
		SET category_id = ?, amount_cents = ?, date = ?, description = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		req.CategoryID, toCents(req.Amount), req.Date.String(), req.Description, db.timestamp(), id, userID,
	)
	if err != nil {
		return models.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return models.Expense{}, err
	} else if n == 0 {
		return models.Expense{}, ErrNotFound
	}
	return db.GetExpense(ctx, userID, id)
}

// DeleteExpense removes an expense owned by the user.
func (db *DB) DeleteExpense(ctx context.Context, userID, id int64) error {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListExpenses returns one page of the user's expenses, newest first, and
// the number of expenses matching the filter.
func (db *DB) ListExpenses(ctx context.Context, userID int64, f ExpenseFilter) ([]models.Expense, int64, error) {
	where := []string{"e.user_id = ?"}
	args := []any{userID}
	if f.CategoryID != 0 {
		where = append(where, "e.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.StartDate != "" {
		where = append(where, "e.date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		where = append(where, "e.date <= ?")
		args = append(args, f.EndDate)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM expenses e WHERE "+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e JOIN categories c ON c.id = e.category_id
		WHERE `+cond+`
		ORDER BY e.date DESC, e.id DESC
		LIMIT ? OFFSET ?`,
		append(args, f.Size, f.Page*f.Size)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, e)
	}
	return expenses, total, rows.Err()
}

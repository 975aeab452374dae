package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"expense-dashboard/internal/models"
)

// Visible categories are the defaults plus the user's own.
const visibleCategory = "(c.is_default = 1 OR c.user_id = ?)"

// ListCategories returns the default categories followed by the user's
// custom ones.
func (db *DB) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT c.id, c.name, c.icon, c.is_default
		FROM categories c
		WHERE `+visibleCategory+`
		ORDER BY c.is_default DESC, c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.IsDefault); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory returns a category visible to the user.
func (db *DB) GetCategory(ctx context.Context, userID, id int64) (models.Category, error) {
	return getCategory(ctx, db.conn, userID, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getCategory(ctx context.Context, q queryer, userID, id int64) (models.Category, error) {
	var c models.Category
	err := q.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.icon, c.is_default
		FROM categories c
		WHERE c.id = ? AND `+visibleCategory, id, userID,
	).Scan(&c.ID, &c.Name, &c.Icon, &c.IsDefault)
	if err != nil {
		return models.Category{}, notFound(err)
	}
	return c, nil
}

// CreateCategory adds a custom category. Names must not repeat a default
// or another custom category of the user, ignoring case.
func (db *DB) CreateCategory(ctx context.Context, userID int64, name, icon string) (models.Category, error) {
	name = strings.TrimSpace(name)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.Category{}, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM categories c
		WHERE lower(c.name) = lower(?) AND `+visibleCategory, name, userID,
	).Scan(&exists)
	if err != nil {
		return models.Category{}, fmt.Errorf("check category name: %w", err)
	}
	if exists > 0 {
		return models.Category{}, ErrConflict
	}

	result, err := tx.ExecContext(ctx,
		"INSERT INTO categories (name, icon, is_default, user_id) VALUES (?, ?, 0, ?)",
		name, icon, userID,
	)
	if err != nil {
		return models.Category{}, fmt.Errorf("insert category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Category{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Category{}, err
	}
	return models.Category{ID: id, Name: name, Icon: icon}, nil
}

// DeleteCategory removes a custom category and moves its expenses to the
// fallback category. It returns the number of expenses moved.
func (db *DB) DeleteCategory(ctx context.Context, userID, id int64) (int64, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	c, err := getCategory(ctx, tx, userID, id)
	if err != nil {
		return 0, err
	}
	if c.IsDefault {
		return 0, ErrDefaultCategory
	}

	var fallbackID int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM categories WHERE is_default = 1 AND name = ?", models.FallbackCategory,
	).Scan(&fallbackID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("fallback category %q is missing", models.FallbackCategory)
	}
	if err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE expenses SET category_id = ?, updated_at = ? WHERE category_id = ? AND user_id = ?",
		fallbackID, db.timestamp(), id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("reassign expenses: %w", err)
	}
	moved, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	return moved, tx.Commit()
}

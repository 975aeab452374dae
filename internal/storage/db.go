// Package storage persists users, categories, expenses and budgets in
// SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("storage: not found")
	// ErrConflict is returned when a unique name or email is taken.
	ErrConflict = errors.New("storage: conflict")
	// ErrDefaultCategory is returned when deleting a seeded category.
	ErrDefaultCategory = errors.New("storage: default category")
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases and connection pragmas
	// consistent.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) timestamp() string {
	return db.now().UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Amounts are stored as integer cents.
func toCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// monthRange returns the first day of month and of the month after it.
func monthRange(month, year int) (start, end string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.Format("2006-01-02"), first.AddDate(0, 1, 0).Format("2006-01-02")
}

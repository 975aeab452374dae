package storage

import (
	"context"
	"fmt"
	"strings"

	"expense-dashboard/internal/models"
)

// UserRecord is a user row including the password hash.
type UserRecord struct {
	models.User
	PasswordHash string
}

// CreateUser creates a new user. It returns ErrConflict when the email is
// taken, compared case-insensitively.
func (db *DB) CreateUser(ctx context.Context, email, name, passwordHash string) (models.User, error) {
	email = strings.TrimSpace(email)
	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO users (email, name, password_hash, created_at) VALUES (?, ?, ?, ?)",
		email, name, passwordHash, db.timestamp(),
	)
	if isUniqueViolation(err) {
		return models.User{}, ErrConflict
	}
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: id, Email: email, Name: name}, nil
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, email, name FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Email, &u.Name)
	if err != nil {
		return models.User{}, notFound(err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user and its password hash by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (UserRecord, error) {
	var u UserRecord
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash FROM users WHERE email = ?",
		strings.TrimSpace(email),
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	if err != nil {
		return UserRecord{}, notFound(err)
	}
	return u, nil
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

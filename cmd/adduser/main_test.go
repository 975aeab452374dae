package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-dashboard/internal/storage"
)

func TestRun_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_success.db")

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	args := []string{"-email", "test@example.com", "-password", "secret123", "-db", dbPath}
	err := run(args, stdin, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "User test@example.com created successfully")

	db, err := storage.NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()
	rec, err := db.GetUserByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "test", rec.Name, "name defaults to the email local part")
}

func TestRun_Name(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_name.db")
	args := []string{"-email", "jo@example.com", "-name", "Jo Smith", "-password", "secret123", "-db", dbPath}
	require.NoError(t, run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))

	db, err := storage.NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()
	rec, err := db.GetUserByEmail(context.Background(), "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jo Smith", rec.Name)
}

func TestRun_DuplicateUser(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_duplicate.db")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	args := []string{"-email", "test@example.com", "-password", "secret123", "-db", dbPath}

	// First run
	err := run(args, stdin, stdout, stderr)
	require.NoError(t, err, "first run should succeed")

	// Second run, differing only in case
	stdout.Reset()
	stderr.Reset()
	args[1] = "TEST@example.com"
	err = run(args, stdin, stdout, stderr)
	require.Error(t, err, "expected error on duplicate user")
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingEmailFlag(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	args := []string{"-password", "secret123"}
	err := run(args, stdin, stdout, stderr)
	require.Error(t, err, "expected error for missing email flag")
	assert.Contains(t, err.Error(), "missing required flags: email")

	// Usage should be printed
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad email", []string{"-email", "not-an-email", "-password", "secret123"}, "invalid email address"},
		{"short password", []string{"-email", "a@example.com", "-password", "short"}, "at least 8 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_InteractivePassword(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_interactive.db")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	// Simulate user typing the password followed by newline
	stdin := bytes.NewBufferString("interactive_secret\n")

	// Omit -password flag
	args := []string{"-email", "interactive@example.com", "-db", dbPath}
	err := run(args, stdin, stdout, stderr)
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "Password: ")
	assert.Contains(t, output, "User interactive@example.com created successfully")
}

func TestRun_InteractivePassword_Empty(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	// Simulate user typing newline (empty password)
	stdin := bytes.NewBufferString("\n")

	args := []string{"-email", "empty@example.com"}
	err := run(args, stdin, stdout, stderr)
	require.Error(t, err, "expected error for empty password")
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestRun_EnvVarOverride(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_env.db")

	t.Setenv("DB_PATH", dbPath)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	// Do not pass -db flag, let it use env var
	args := []string{"-email", "env@example.com", "-password", "secret123"}
	err := run(args, stdin, stdout, stderr)
	require.NoError(t, err)

	// Verify DB file was created at dbPath
	assert.FileExists(t, dbPath)
}

func TestRun_InvalidDBPath(t *testing.T) {
	// Use a directory path as DB file path, which should fail
	tmpDir := t.TempDir()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	args := []string{"-email", "fail@example.com", "-password", "secret123", "-db", tmpDir}
	err := run(args, stdin, stdout, stderr)
	require.Error(t, err, "expected error for invalid db path")
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestRun_InvalidFlag(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	args := []string{"-invalid"}
	err := run(args, stdin, stdout, stderr)
	require.Error(t, err, "expected error for invalid flag")
	assert.Contains(t, err.Error(), "flag provided but not defined")
}

// Command adduser creates an account directly in the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"expense-dashboard/internal/auth"
	"expense-dashboard/internal/prompt"
	"expense-dashboard/internal/storage"
	"expense-dashboard/internal/validate"
)

const defaultDBPath = "expenses.db"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address used to log in")
	name := fs.String("name", "", "Display name (defaults to the part of the email before @)")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbPath := fs.String("db", defaultDBPath, "Path to database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	*email = strings.TrimSpace(*email)
	if *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> [-name <name>] [-password <password>] [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email")
	}
	if !validate.Email(*email) {
		return fmt.Errorf("invalid email address %q", *email)
	}

	password := *passwordFlag
	if password == "" {
		var err error
		password, err = prompt.Password(stdin, stdout, "Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if utf8.RuneCountInString(password) < validate.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", validate.MinPasswordLength)
	}

	displayName := strings.TrimSpace(*name)
	if displayName == "" {
		displayName = validate.NameFromEmail(*email)
	}

	// Allow overriding db path via env var if not explicitly set via flag (flag default is used)
	if path := os.Getenv("DB_PATH"); path != "" && *dbPath == defaultDBPath {
		*dbPath = path
	}

	db, err := storage.NewDB(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := db.CreateUser(context.Background(), *email, displayName, hash)
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("user %s already exists", *email)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Email, user.ID)
	return nil
}

// Package validate holds the form checks run before a request is sent.
// They mirror the server's rules so the user gets inline feedback, but
// the server stays authoritative.
package validate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"expense-dashboard/internal/models"
)

// Field names used as keys in Errors.
const (
	FieldAmount          = "amount"
	FieldCategory        = "categoryId"
	FieldDate            = "date"
	FieldDescription     = "description"
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// Limits shared with the server.
const (
	MaxDescriptionLength  = 200
	MaxCategoryNameLength = 50
	MinPasswordLength     = 8
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps a form field to its message.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool {
	return len(e) == 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when every field passed.
func (e Errors) Err() error {
	if e.OK() {
		return nil
	}
	return e
}

// Amount parses a positive decimal amount. It returns false for empty,
// malformed, zero and negative input.
func Amount(text string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// ExpenseInput is the raw text of the expense form.
type ExpenseInput struct {
	Amount      string
	CategoryID  string
	Date        string
	Description string
}

// Expense checks the expense form against today's date and builds the
// request on success.
func Expense(in ExpenseInput, today models.Date) (models.ExpenseRequest, Errors) {
	errs := Errors{}
	var req models.ExpenseRequest

	if amt, ok := Amount(in.Amount); ok {
		req.Amount = amt
	} else {
		errs[FieldAmount] = "Amount must be a positive number"
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(in.CategoryID), 10, 64); err == nil && id > 0 {
		req.CategoryID = id
	} else {
		errs[FieldCategory] = "Please select a category"
	}

	switch d, err := models.ParseDate(strings.TrimSpace(in.Date)); {
	case strings.TrimSpace(in.Date) == "":
		errs[FieldDate] = "Date is required"
	case err != nil:
		errs[FieldDate] = "Date is invalid"
	case d.After(today):
		errs[FieldDate] = "Date cannot be in the future"
	default:
		req.Date = d
	}

	if utf8.RuneCountInString(in.Description) > MaxDescriptionLength {
		errs[FieldDescription] = "Description must be 200 characters or less"
	} else {
		req.Description = in.Description
	}

	return req, errs
}

// CategoryName checks a new category name and returns it trimmed.
func CategoryName(name string) (string, Errors) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", Errors{FieldName: "Category name is required."}
	case utf8.RuneCountInString(name) > MaxCategoryNameLength:
		return "", Errors{FieldName: "Category name must be 50 characters or less."}
	}
	return name, Errors{}
}

// BudgetAmount checks the monthly budget input.
func BudgetAmount(text string) (decimal.Decimal, Errors) {
	amt, ok := Amount(text)
	if !ok {
		return decimal.Zero, Errors{FieldAmount: "Please enter a valid positive number."}
	}
	return amt, Errors{}
}

// Login checks that both credentials were entered.
func Login(email, password string) Errors {
	errs := Errors{}
	if strings.TrimSpace(email) == "" {
		errs[FieldEmail] = "Email is required"
	}
	if strings.TrimSpace(password) == "" {
		errs[FieldPassword] = "Password is required"
	}
	return errs
}

// Register checks the registration form.
func Register(email, password, confirm string) Errors {
	errs := Errors{}
	switch {
	case strings.TrimSpace(email) == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "Invalid email format"
	}
	switch {
	case password == "":
		errs[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(password) < MinPasswordLength:
		errs[FieldPassword] = "Password must be at least 8 characters"
	}
	switch {
	case confirm == "":
		errs[FieldConfirmPassword] = "Please confirm your password"
	case password != confirm:
		errs[FieldConfirmPassword] = "Passwords do not match"
	}
	return errs
}

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// NameFromEmail derives a display name from the local part of an email.
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

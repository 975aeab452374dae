package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-dashboard/internal/models"
)

func TestAmount(t *testing.T) {
	for _, in := range []string{"0", "-5", "", "abc", "  ", "0.00"} {
		_, ok := Amount(in)
		assert.False(t, ok, "%q should fail", in)
	}
	for _, in := range []string{"0.01", "42.5", " 7 "} {
		_, ok := Amount(in)
		assert.True(t, ok, "%q should pass", in)
	}
}

func TestExpense(t *testing.T) {
	today := models.NewDate(2026, time.October, 18)

	t.Run("valid", func(t *testing.T) {
		req, errs := Expense(ExpenseInput{Amount: "12.50", CategoryID: "3", Date: "2026-10-18", Description: "Lunch"}, today)
		require.True(t, errs.OK(), errs)
		assert.Equal(t, "12.5", req.Amount.String())
		assert.Equal(t, int64(3), req.CategoryID)
		assert.Equal(t, "2026-10-18", req.Date.String())
		assert.Equal(t, "Lunch", req.Description)
	})

	t.Run("every field wrong", func(t *testing.T) {
		_, errs := Expense(ExpenseInput{Amount: "0", CategoryID: "", Date: "2026-10-19", Description: strings.Repeat("x", 201)}, today)
		assert.Equal(t, "Amount must be a positive number", errs[FieldAmount])
		assert.Equal(t, "Please select a category", errs[FieldCategory])
		assert.Equal(t, "Date cannot be in the future", errs[FieldDate])
		assert.Equal(t, "Description must be 200 characters or less", errs[FieldDescription])
	})

	t.Run("missing date", func(t *testing.T) {
		_, errs := Expense(ExpenseInput{Amount: "1", CategoryID: "1"}, today)
		assert.Equal(t, "Date is required", errs[FieldDate])
	})

	t.Run("description at the limit", func(t *testing.T) {
		_, errs := Expense(ExpenseInput{Amount: "1", CategoryID: "1", Date: "2026-01-01", Description: strings.Repeat("é", 200)}, today)
		assert.True(t, errs.OK())
	})
}

func TestCategoryName(t *testing.T) {
	name, errs := CategoryName("  Pets ")
	assert.True(t, errs.OK())
	assert.Equal(t, "Pets", name)

	_, errs = CategoryName("   ")
	assert.Equal(t, "Category name is required.", errs[FieldName])

	_, errs = CategoryName(strings.Repeat("a", 51))
	assert.Equal(t, "Category name must be 50 characters or less.", errs[FieldName])

	_, errs = CategoryName(strings.Repeat("a", 50))
	assert.True(t, errs.OK())
}

func TestBudgetAmount(t *testing.T) {
	amt, errs := BudgetAmount("1500")
	require.True(t, errs.OK())
	assert.Equal(t, "1500", amt.String())

	_, errs = BudgetAmount("-1")
	assert.Equal(t, "Please enter a valid positive number.", errs[FieldAmount])
}

func TestLogin(t *testing.T) {
	errs := Login("", " ")
	assert.Len(t, errs, 2)
	assert.True(t, Login("a@b.co", "pw").OK())
}

func TestRegister(t *testing.T) {
	errs := Register("not-an-email", "short", "other")
	assert.Equal(t, "Invalid email format", errs[FieldEmail])
	assert.Equal(t, "Password must be at least 8 characters", errs[FieldPassword])
	assert.Equal(t, "Passwords do not match", errs[FieldConfirmPassword])

	errs = Register("", "", "")
	assert.Equal(t, "Email is required", errs[FieldEmail])
	assert.Equal(t, "Password is required", errs[FieldPassword])
	assert.Equal(t, "Please confirm your password", errs[FieldConfirmPassword])

	assert.True(t, Register("jane@example.com", "password1", "password1").OK())
}

func TestErrors(t *testing.T) {
	assert.NoError(t, Errors{}.Err())
	err := Errors{FieldDate: "Date is required", FieldAmount: "bad"}.Err()
	require.Error(t, err)
	assert.Equal(t, "validation failed: amount: bad; date: Date is required", err.Error())
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "jane", NameFromEmail("jane@example.com"))
	assert.Equal(t, "plain", NameFromEmail("plain"))
}

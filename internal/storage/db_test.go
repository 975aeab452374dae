package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"expense-dashboard/internal/auth"
	"expense-dashboard/internal/models"
)

// DBTestSuite provides a test suite for database operations
type DBTestSuite struct {
	suite.Suite
	db   *DB
	ctx  context.Context
	user models.User
}

// SetupTest runs before each test
func (suite *DBTestSuite) SetupTest() {
	db, err := NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.ctx = context.Background()

	hash, err := auth.HashPassword("testpass")
	require.NoError(suite.T(), err, "failed to hash password")
	suite.user, err = db.CreateUser(suite.ctx, "test@example.com", "test", hash)
	require.NoError(suite.T(), err, "failed to create test user")
}

// TearDownTest runs after each test
func (suite *DBTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *DBTestSuite) category(name string) models.Category {
	cats, err := suite.db.ListCategories(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	for _, c := range cats {
		if c.Name == name {
			return c
		}
	}
	suite.T().Fatalf("category %q not found", name)
	return models.Category{}
}

func (suite *DBTestSuite) addExpense(amount, date, category string) models.Expense {
	d, err := models.ParseDate(date)
	require.NoError(suite.T(), err)
	e, err := suite.db.CreateExpense(suite.ctx, suite.user.ID, models.ExpenseRequest{
		Amount:      decimal.RequireFromString(amount),
		CategoryID:  suite.category(category).ID,
		Date:        d,
		Description: category + " " + date,
	})
	require.NoError(suite.T(), err, "failed to create expense")
	return e
}

func (suite *DBTestSuite) TestSeededCategories() {
	cats, err := suite.db.ListCategories(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cats, len(models.DefaultCategories))
	for i, c := range cats {
		assert.True(suite.T(), c.IsDefault)
		assert.Equal(suite.T(), models.DefaultCategories[i].Name, c.Name)
	}
}

func (suite *DBTestSuite) TestUsers() {
	_, err := suite.db.CreateUser(suite.ctx, "TEST@example.com", "dup", "x")
	assert.ErrorIs(suite.T(), err, ErrConflict, "emails are unique ignoring case")

	rec, err := suite.db.GetUserByEmail(suite.ctx, "test@example.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID, rec.ID)
	assert.True(suite.T(), auth.CheckPassword("testpass", rec.PasswordHash))

	_, err = suite.db.GetUserByEmail(suite.ctx, "nobody@example.com")
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	u, err := suite.db.GetUserByID(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "test", u.Name)

	count, err := suite.db.UserCount(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count)
}

func (suite *DBTestSuite) TestExpenseCRUD() {
	e := suite.addExpense("10.50", "2025-03-04", "Food")
	assert.True(suite.T(), e.Amount.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(suite.T(), "Food", e.Category.Name)
	assert.Equal(suite.T(), "2025-03-04", e.Date.String())
	assert.False(suite.T(), e.CreatedAt.IsZero())

	updated, err := suite.db.UpdateExpense(suite.ctx, suite.user.ID, e.ID, models.ExpenseRequest{
		Amount:      decimal.RequireFromString("12"),
		CategoryID:  suite.category("Housing").ID,
		Date:        models.NewDate(2025, 3, 5),
		Description: "Rent share",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Housing", updated.Category.Name)
	assert.Equal(suite.T(), "Rent share", updated.Description)

	require.NoError(suite.T(), suite.db.DeleteExpense(suite.ctx, suite.user.ID, e.ID))
	_, err = suite.db.GetExpense(suite.ctx, suite.user.ID, e.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
	assert.ErrorIs(suite.T(), suite.db.DeleteExpense(suite.ctx, suite.user.ID, e.ID), ErrNotFound)
}

func (suite *DBTestSuite) TestExpensesAreScopedToOwner() {
	e := suite.addExpense("5", "2025-03-04", "Food")
	other, err := suite.db.CreateUser(suite.ctx, "other@example.com", "other", "x")
	require.NoError(suite.T(), err)

	_, err = suite.db.GetExpense(suite.ctx, other.ID, e.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
	assert.ErrorIs(suite.T(), suite.db.DeleteExpense(suite.ctx, other.ID, e.ID), ErrNotFound)

	custom, err := suite.db.CreateCategory(suite.ctx, suite.user.ID, "Gym", "")
	require.NoError(suite.T(), err)
	_, err = suite.db.CreateExpense(suite.ctx, other.ID, models.ExpenseRequest{
		Amount: decimal.NewFromInt(1), CategoryID: custom.ID, Date: models.NewDate(2025, 1, 1),
	})
	assert.ErrorIs(suite.T(), err, ErrNotFound, "custom categories of other users are invisible")
}

func (suite *DBTestSuite) TestListExpenses() {
	suite.addExpense("20", "2025-01-10", "Transportation")
	suite.addExpense("5", "2025-01-12", "Food")
	suite.addExpense("15", "2025-01-12", "Food")
	suite.addExpense("7", "2025-02-01", "Food")

	result, total, err := suite.db.ListExpenses(suite.ctx, suite.user.ID, ExpenseFilter{Size: 10})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), total)
	require.Len(suite.T(), result, 4)
	// Latest date first, then latest insert.
	assert.Equal(suite.T(), "2025-02-01", result[0].Date.String())
	assert.True(suite.T(), result[1].Amount.Equal(decimal.NewFromInt(15)))

	result, total, err = suite.db.ListExpenses(suite.ctx, suite.user.ID, ExpenseFilter{
		CategoryID: suite.category("Food").ID,
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-31",
		Size:       10,
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), result, 2)

	result, total, err = suite.db.ListExpenses(suite.ctx, suite.user.ID, ExpenseFilter{Page: 1, Size: 3})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), total)
	require.Len(suite.T(), result, 1)
	assert.Equal(suite.T(), "2025-01-10", result[0].Date.String())
}

func (suite *DBTestSuite) TestCategories() {
	gym, err := suite.db.CreateCategory(suite.ctx, suite.user.ID, "  Gym ", "🏋")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Gym", gym.Name)
	assert.False(suite.T(), gym.IsDefault)

	_, err = suite.db.CreateCategory(suite.ctx, suite.user.ID, "gym", "")
	assert.ErrorIs(suite.T(), err, ErrConflict)
	_, err = suite.db.CreateCategory(suite.ctx, suite.user.ID, "FOOD", "")
	assert.ErrorIs(suite.T(), err, ErrConflict, "defaults are reserved")

	other, err := suite.db.CreateUser(suite.ctx, "other@example.com", "other", "x")
	require.NoError(suite.T(), err)
	_, err = suite.db.CreateCategory(suite.ctx, other.ID, "Gym", "")
	assert.NoError(suite.T(), err, "custom names are per user")

	cats, err := suite.db.ListCategories(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), cats, len(models.DefaultCategories)+1)
	assert.Equal(suite.T(), "Gym", cats[len(cats)-1].Name)
}

func (suite *DBTestSuite) TestDeleteCategoryReassignsExpenses() {
	gym, err := suite.db.CreateCategory(suite.ctx, suite.user.ID, "Gym", "")
	require.NoError(suite.T(), err)
	e := suite.addExpense("30", "2025-03-01", "Gym")
	suite.addExpense("4", "2025-03-02", "Food")

	moved, err := suite.db.DeleteCategory(suite.ctx, suite.user.ID, gym.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), moved)

	got, err := suite.db.GetExpense(suite.ctx, suite.user.ID, e.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.FallbackCategory, got.Category.Name)

	_, err = suite.db.GetCategory(suite.ctx, suite.user.ID, gym.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	_, err = suite.db.DeleteCategory(suite.ctx, suite.user.ID, suite.category("Food").ID)
	assert.ErrorIs(suite.T(), err, ErrDefaultCategory)

	_, err = suite.db.DeleteCategory(suite.ctx, suite.user.ID, 9999)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *DBTestSuite) TestBudgets() {
	_, err := suite.db.GetBudget(suite.ctx, suite.user.ID, 3, 2025)
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	b, err := suite.db.SetBudget(suite.ctx, suite.user.ID, 3, 2025, decimal.NewFromInt(1500))
	require.NoError(suite.T(), err)
	assert.NotZero(suite.T(), b.ID)

	again, err := suite.db.SetBudget(suite.ctx, suite.user.ID, 3, 2025, decimal.RequireFromString("1750.25"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), b.ID, again.ID, "setting a budget twice updates it")

	got, err := suite.db.GetBudget(suite.ctx, suite.user.ID, 3, 2025)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), got.Amount.Equal(decimal.RequireFromString("1750.25")))
}

func (suite *DBTestSuite) TestReports() {
	suite.addExpense("100", "2025-03-01", "Food")
	suite.addExpense("50.25", "2025-03-31", "Food")
	suite.addExpense("49.75", "2025-03-15", "Utilities")
	suite.addExpense("999", "2025-04-01", "Housing")
	suite.addExpense("1", "2024-03-10", "Food")

	total, count, err := suite.db.MonthTotals(suite.ctx, suite.user.ID, 3, 2025)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), total.Equal(decimal.NewFromInt(200)), "got %s", total)
	assert.Equal(suite.T(), int64(3), count)

	totals, err := suite.db.CategoryTotals(suite.ctx, suite.user.ID, 3, 2025)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), totals, 2)
	assert.Equal(suite.T(), "Food", totals[0].Category.Name)
	assert.True(suite.T(), totals[0].Total.Equal(decimal.RequireFromString("150.25")))
	assert.Equal(suite.T(), int64(2), totals[0].Count)

	trend, err := suite.db.YearTrend(suite.ctx, suite.user.ID, 2025)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), trend, 12)
	assert.True(suite.T(), trend[0].TotalSpent.IsZero())
	assert.True(suite.T(), trend[2].TotalSpent.Equal(decimal.NewFromInt(200)))
	assert.Equal(suite.T(), int64(1), trend[3].TransactionCount)
	assert.Equal(suite.T(), 12, trend[11].Month)
	assert.Equal(suite.T(), 2025, trend[11].Year)
}

func (suite *DBTestSuite) TestReopenKeepsSchema() {
	path := suite.T().TempDir() + "/expenses.db"
	db, err := NewDB(path)
	require.NoError(suite.T(), err)
	_, err = db.CreateUser(suite.ctx, "a@b.co", "a", "x")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), db.Close())

	db, err = NewDB(path)
	require.NoError(suite.T(), err, "migrations are idempotent")
	defer db.Close()
	count, err := db.UserCount(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count)
}

// Test suite runners
func TestDBSuite(t *testing.T) {
	suite.Run(t, new(DBTestSuite))
}

func TestMonthRange(t *testing.T) {
	start, end := monthRange(12, 2024)
	assert.Equal(t, "2024-12-01", start)
	assert.Equal(t, "2025-01-01", end)
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(1050), toCents(decimal.RequireFromString("10.5")))
	assert.Equal(t, int64(1), toCents(decimal.RequireFromString("0.005")))
	assert.Equal(t, "12.34", fromCents(1234).String())
}

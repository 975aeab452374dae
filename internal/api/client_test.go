package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-dashboard/internal/models"
	"expense-dashboard/internal/session"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestBearerTokenAndPrefix(t *testing.T) {
	store := session.New(session.State{Token: "tok-1"})
	var gotAuth, gotPath string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		writeJSON(w, http.StatusOK, models.User{ID: 7, Email: "a@b.co", Name: "a"})
	}, WithSession(store))

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "/api/auth/me", gotPath)
}

func TestNoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		writeJSON(w, http.StatusOK, []models.Category{})
	}, WithSession(session.New(session.State{})))

	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestUnauthorizedClearsSessionOnce(t *testing.T) {
	store := session.New(session.State{Token: "expired", User: &models.User{ID: 1}})
	var notified, redirects atomic.Int32
	store.Subscribe(func(session.State) { notified.Add(1) })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, models.ErrorBody{Error: models.CodeUnauthorized})
	}, WithSession(store), WithUnauthorizedHandler(func() { redirects.Add(1) }))

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Summary(context.Background(), 1, 2025)
			assert.ErrorIs(t, err, ErrUnauthorized)
		}()
	}
	wg.Wait()

	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
	assert.Equal(t, int32(1), notified.Load())
	assert.Equal(t, int32(1), redirects.Load())
	assert.Equal(t, models.CodeUnauthorized, CodeOf(ErrUnauthorized))
}

func TestNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/expenses/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.DeleteExpense(context.Background(), 42))
}

func TestErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, models.ErrorBody{
			Error:   models.CodeCategoryExists,
			Message: "Category already exists",
		})
	})

	_, err := c.CreateCategory(context.Background(), models.CreateCategoryRequest{Name: "Food"})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, models.CodeCategoryExists, apiErr.Code)
	assert.Equal(t, "Category already exists", apiErr.Message)
	assert.Equal(t, models.CodeCategoryExists, CodeOf(err))
}

func TestNonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.ListCategories(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeUnknown, apiErr.Code)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL).ListCategories(context.Background())
	require.Error(t, err)
	assert.Empty(t, CodeOf(err))
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestListExpensesOmitsZeroParams(t *testing.T) {
	tests := []struct {
		name   string
		filter ExpenseFilter
		want   string
	}{
		{"no filter", ExpenseFilter{}, ""},
		{"size only", ExpenseFilter{Size: 10}, "size=10"},
		{
			"all",
			ExpenseFilter{Category: 3, StartDate: "2025-01-01", EndDate: "2025-01-31", Page: 2, Size: 10},
			"category=3&endDate=2025-01-31&page=2&size=10&startDate=2025-01-01",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				raw = r.URL.RawQuery
				writeJSON(w, http.StatusOK, models.NewPage([]models.Expense{}, 0, 10, 0))
			})
			_, err := c.ListExpenses(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, raw)
		})
	}
}

func TestCreateExpenseSendsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 12.5, body["amount"])
		assert.Equal(t, "2025-03-04", body["date"])
		assert.Equal(t, float64(2), body["categoryId"])
		writeJSON(w, http.StatusCreated, models.Expense{ID: 9, Amount: decimal.RequireFromString("12.5")})
	})

	e, err := c.CreateExpense(context.Background(), models.ExpenseRequest{
		Amount:     decimal.RequireFromString("12.5"),
		CategoryID: 2,
		Date:       models.NewDate(2025, 3, 4),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), e.ID)
	assert.True(t, e.Amount.Equal(decimal.RequireFromString("12.5")))
}

func TestReportQueries(t *testing.T) {
	var queries []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Path+"?"+r.URL.RawQuery)
		switch r.URL.Path {
		case "/api/reports/summary":
			writeJSON(w, http.StatusOK, models.MonthlySummary{Month: 2, Year: 2025})
		case "/api/budgets/monthly":
			writeJSON(w, http.StatusOK, models.Budget{Month: 2, Year: 2025})
		default:
			writeJSON(w, http.StatusOK, []any{})
		}
	})

	ctx := context.Background()
	_, err := c.Summary(ctx, 2, 2025)
	require.NoError(t, err)
	_, err = c.ByCategory(ctx, 2, 2025)
	require.NoError(t, err)
	_, err = c.MonthlyTrend(ctx, 2025)
	require.NoError(t, err)
	b, err := c.GetMonthlyBudget(ctx, 2, 2025)
	require.NoError(t, err)
	assert.False(t, b.HasAmount())

	assert.Equal(t, []string{
		"/api/reports/summary?month=2&year=2025",
		"/api/reports/by-category?month=2&year=2025",
		"/api/reports/monthly-trend?year=2025",
		"/api/budgets/monthly?month=2&year=2025",
	}, queries)
}

func TestInvalidCredentialsKeepsSession(t *testing.T) {
	store := session.New(session.State{Token: "still-valid"})
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, models.ErrorBody{
			Error:   models.CodeInvalidCredentials,
			Message: "Invalid email or password",
		})
	}, WithSession(store), WithUnauthorizedHandler(func() { called = true }))

	_, err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.co", Password: "nope"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, models.CodeInvalidCredentials, CodeOf(err))
	assert.Equal(t, "still-valid", store.Token())
	assert.False(t, called)
}

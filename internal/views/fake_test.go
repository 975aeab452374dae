package views

import (
	"context"
	"sync"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/models"
)

// fakeGateway answers from its function fields. Unset methods return
// zero values.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	login          func(models.LoginRequest) (models.AuthResponse, error)
	register       func(models.RegisterRequest) (models.AuthResponse, error)
	listExpenses   func(context.Context, api.ExpenseFilter) (models.Page[models.Expense], error)
	getExpense     func(int64) (models.Expense, error)
	createExpense  func(models.ExpenseRequest) (models.Expense, error)
	updateExpense  func(int64, models.ExpenseRequest) (models.Expense, error)
	deleteExpense  func(int64) error
	listCategories func() ([]models.Category, error)
	createCategory func(models.CreateCategoryRequest) (models.Category, error)
	deleteCategory func(int64) error
	getBudget      func(month, year int) (models.Budget, error)
	setBudget      func(models.BudgetRequest) (models.Budget, error)
	summary        func(ctx context.Context, month, year int) (models.MonthlySummary, error)
	byCategory     func(ctx context.Context, month, year int) ([]models.CategoryBreakdown, error)
	trend          func(ctx context.Context, year int) ([]models.MonthlyTrend, error)
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeGateway) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeGateway) Login(_ context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	f.record("Login")
	if f.login == nil {
		return models.AuthResponse{}, nil
	}
	return f.login(req)
}

func (f *fakeGateway) Register(_ context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	f.record("Register")
	if f.register == nil {
		return models.AuthResponse{}, nil
	}
	return f.register(req)
}

func (f *fakeGateway) ListExpenses(ctx context.Context, filter api.ExpenseFilter) (models.Page[models.Expense], error) {
	f.record("ListExpenses")
	if f.listExpenses == nil {
		return models.NewPage[models.Expense](nil, filter.Page, filter.Size, 0), nil
	}
	return f.listExpenses(ctx, filter)
}

func (f *fakeGateway) GetExpense(_ context.Context, id int64) (models.Expense, error) {
	f.record("GetExpense")
	if f.getExpense == nil {
		return models.Expense{ID: id}, nil
	}
	return f.getExpense(id)
}

func (f *fakeGateway) CreateExpense(_ context.Context, req models.ExpenseRequest) (models.Expense, error) {
	f.record("CreateExpense")
	if f.createExpense == nil {
		return models.Expense{ID: 1, Amount: req.Amount}, nil
	}
	return f.createExpense(req)
}

func (f *fakeGateway) UpdateExpense(_ context.Context, id int64, req models.ExpenseRequest) (models.Expense, error) {
	f.record("UpdateExpense")
	if f.updateExpense == nil {
		return models.Expense{ID: id, Amount: req.Amount}, nil
	}
	return f.updateExpense(id, req)
}

func (f *fakeGateway) DeleteExpense(_ context.Context, id int64) error {
	f.record("DeleteExpense")
	if f.deleteExpense == nil {
		return nil
	}
	return f.deleteExpense(id)
}

func (f *fakeGateway) ListCategories(context.Context) ([]models.Category, error) {
	f.record("ListCategories")
	if f.listCategories == nil {
		return nil, nil
	}
	return f.listCategories()
}

func (f *fakeGateway) CreateCategory(_ context.Context, req models.CreateCategoryRequest) (models.Category, error) {
	f.record("CreateCategory")
	if f.createCategory == nil {
		return models.Category{Name: req.Name}, nil
	}
	return f.createCategory(req)
}

func (f *fakeGateway) DeleteCategory(_ context.Context, id int64) error {
	f.record("DeleteCategory")
	if f.deleteCategory == nil {
		return nil
	}
	return f.deleteCategory(id)
}

func (f *fakeGateway) GetMonthlyBudget(_ context.Context, month, year int) (models.Budget, error) {
	f.record("GetMonthlyBudget")
	if f.getBudget == nil {
		return models.Budget{Month: month, Year: year}, nil
	}
	return f.getBudget(month, year)
}

func (f *fakeGateway) SetMonthlyBudget(_ context.Context, req models.BudgetRequest) (models.Budget, error) {
	f.record("SetMonthlyBudget")
	if f.setBudget == nil {
		amt := req.Amount
		return models.Budget{Month: req.Month, Year: req.Year, Amount: &amt}, nil
	}
	return f.setBudget(req)
}

func (f *fakeGateway) Summary(ctx context.Context, month, year int) (models.MonthlySummary, error) {
	f.record("Summary")
	if f.summary == nil {
		return models.MonthlySummary{Month: month, Year: year}, nil
	}
	return f.summary(ctx, month, year)
}

func (f *fakeGateway) ByCategory(ctx context.Context, month, year int) ([]models.CategoryBreakdown, error) {
	f.record("ByCategory")
	if f.byCategory == nil {
		return nil, nil
	}
	return f.byCategory(ctx, month, year)
}

func (f *fakeGateway) MonthlyTrend(ctx context.Context, year int) ([]models.MonthlyTrend, error) {
	f.record("MonthlyTrend")
	if f.trend == nil {
		return nil, nil
	}
	return f.trend(ctx, year)
}

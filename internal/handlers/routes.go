package handlers

import "net/http"

// Register mounts the browser routes on mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /register", h.RegisterForm)
	mux.HandleFunc("POST /register", h.RegisterSubmit)
	mux.HandleFunc("POST /logout", h.Logout)

	protected := map[string]http.HandlerFunc{
		"GET /dashboard":                  h.Dashboard,
		"GET /dashboard/widgets/{widget}": h.Widget,
		"GET /expenses":                   h.ListExpenses,
		"GET /expenses/new":               h.CreateExpenseForm,
		"POST /expenses":                  h.CreateExpense,
		"GET /expenses/{id}/edit":         h.EditExpenseForm,
		"POST /expenses/{id}":             h.UpdateExpense,
		"POST /expenses/{id}/delete":      h.DeleteExpense,
		"GET /categories":                 h.Categories,
		"POST /categories":                h.CreateCategory,
		"POST /categories/{id}/delete":    h.DeleteCategory,
		"GET /budget":                     h.Budget,
		"POST /budget":                    h.SetBudget,
		"GET /charts/breakdown.png":       h.BreakdownChart,
		"GET /charts/trend.png":           h.TrendChart,
	}
	for pattern, fn := range protected {
		mux.Handle(pattern, h.AuthMiddleware(fn))
	}
}

// Package server serves the expense REST API under /api.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"expense-dashboard/internal/auth"
	"expense-dashboard/internal/log"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/storage"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// Server holds dependencies for the API handlers.
type Server struct {
	db     *storage.DB
	tokens *auth.Tokens
	logger *log.Logger
	now    func() time.Time
}

// New creates a Server.
func New(db *storage.DB, tokens *auth.Tokens, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	return &Server{
		db:     db,
		tokens: tokens,
		logger: logger.WithComponent(log.ComponentAPI),
		now:    time.Now,
	}
}

// Register mounts every API route on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.Handle("GET /api/auth/me", s.authenticate(s.me))

	mux.Handle("GET /api/expenses", s.authenticate(s.listExpenses))
	mux.Handle("POST /api/expenses", s.authenticate(s.createExpense))
	mux.Handle("GET /api/expenses/{id}", s.authenticate(s.getExpense))
	mux.Handle("PUT /api/expenses/{id}", s.authenticate(s.updateExpense))
	mux.Handle("DELETE /api/expenses/{id}", s.authenticate(s.deleteExpense))

	mux.Handle("GET /api/categories", s.authenticate(s.listCategories))
	mux.Handle("POST /api/categories", s.authenticate(s.createCategory))
	mux.Handle("DELETE /api/categories/{id}", s.authenticate(s.deleteCategory))

	mux.Handle("GET /api/budgets/monthly", s.authenticate(s.getBudget))
	mux.Handle("PUT /api/budgets/monthly", s.authenticate(s.setBudget))

	mux.Handle("GET /api/reports/summary", s.authenticate(s.summary))
	mux.Handle("GET /api/reports/by-category", s.authenticate(s.byCategory))
	mux.Handle("GET /api/reports/monthly-trend", s.authenticate(s.monthlyTrend))

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, models.CodeNotFound, "Resource not found")
	})
}

// Handler returns a mux serving only the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// authenticate requires a valid bearer token and stores the user ID in
// the request context.
func (s *Server) authenticate(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			writeError(w, http.StatusUnauthorized, models.CodeUnauthorized, "Authentication required")
			return
		}

		claims, err := s.tokens.Parse(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, models.CodeUnauthorized, "Session expired, please log in again")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			writeError(w, http.StatusUnauthorized, models.CodeUnauthorized, "Session expired, please log in again")
			return
		}
		if _, err := s.db.GetUserByID(r.Context(), userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, models.CodeUnauthorized, "User no longer exists")
				return
			}
			s.internalError(w, r, "load user", err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDContextKey).(int64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, models.ErrorBody{Error: code, Message: message})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.FromContext(r.Context()).ErrorContext(r.Context(), "API request failed",
		log.FieldOperation, op,
		log.FieldError, err,
	)
	writeError(w, http.StatusInternalServerError, models.CodeInternal, "An unexpected error occurred")
}

// storageError maps storage sentinels to API errors.
func (s *Server) storageError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, models.CodeNotFound, notFoundMessage(op))
	case errors.Is(err, storage.ErrDefaultCategory):
		writeError(w, http.StatusBadRequest, models.CodeValidation, "Default categories cannot be deleted")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
	default:
		s.internalError(w, r, op, err)
	}
}

func notFoundMessage(op string) string {
	switch {
	case strings.Contains(op, "category"):
		return "Category not found"
	case strings.Contains(op, "expense"):
		return "Expense not found"
	}
	return "Resource not found"
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, models.CodeValidation, "Invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, models.CodeNotFound, "Resource not found")
		return 0, false
	}
	return id, true
}

// monthParams reads month and year, defaulting to the current month.
func (s *Server) monthParams(w http.ResponseWriter, r *http.Request) (month, year int, ok bool) {
	now := s.now()
	month, year = int(now.Month()), now.Year()
	q := r.URL.Query()
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, models.CodeValidation, "Month must be between 1 and 12")
			return 0, 0, false
		}
		month = m
	}
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, models.CodeValidation, "Year must be a number")
			return 0, 0, false
		}
		year = y
	}
	return month, year, true
}

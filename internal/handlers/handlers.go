// Package handlers serves the browser front end. Pages are rendered on
// the server from data fetched through the REST API with the caller's
// token.
package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/colors"
	"expense-dashboard/internal/format"
	"expense-dashboard/internal/log"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/session"
	"expense-dashboard/internal/toast"
	"expense-dashboard/internal/views"
)

// Context key type to avoid collisions.
type contextKey string

const (
	requestContextKey contextKey = "request"
	// TokenCookieName is the name of the cookie carrying the API token.
	TokenCookieName = "token"
	// FlashCookieName carries toasts across a redirect.
	FlashCookieName = "flash"
	// TokenDuration is how long the token cookie lasts.
	TokenDuration = 24 * time.Hour
)

const msgSessionExpired = "Your session has expired. Please log in again."

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	apiURL       string
	httpClient   *http.Client
	templateDir  string
	secureCookie bool
	logger       *log.Logger
	now          func() time.Time
}

// NewHandlers creates a new Handlers instance talking to the API at
// apiURL.
func NewHandlers(apiURL, templateDir string, secureCookie bool, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Discard()
	}
	return &Handlers{
		apiURL:       apiURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		templateDir:  templateDir,
		secureCookie: secureCookie,
		logger:       logger.WithComponent(log.ComponentWeb),
		now:          time.Now,
	}
}

// request is the per-request front end state: a session materialized
// from the token cookie, a toast center seeded from the flash cookie and
// a color assigner for the rendered page.
type request struct {
	client *api.Client
	store  *session.Store
	toasts *toast.Center
	colors *colors.Assigner
	user   *models.User

	flashRead bool
}

// begin builds the request state. Changes to the session are mirrored
// into the token cookie, so a 401 from the API logs the browser out.
func (h *Handlers) begin(w http.ResponseWriter, r *http.Request) *request {
	if rq, ok := r.Context().Value(requestContextKey).(*request); ok {
		return rq
	}

	var state session.State
	if c, err := r.Cookie(TokenCookieName); err == nil && c.Value != "" {
		state.Token = c.Value
	}
	store := session.New(state)
	store.Subscribe(func(st session.State) {
		if st.SignedIn() {
			h.setTokenCookie(w, st.Token)
		} else {
			h.clearCookie(w, TokenCookieName)
		}
	})

	rq := &request{
		store:  store,
		toasts: toast.NewCenter(),
		colors: colors.NewAssigner(),
	}
	rq.client = api.New(h.apiURL,
		api.WithHTTPClient(h.httpClient),
		api.WithSession(store),
		api.WithLogger(log.FromContext(r.Context())),
	)
	rq.flashRead = h.readFlash(r, rq.toasts)
	return rq
}

func withRequest(r *http.Request, rq *request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestContextKey, rq))
}

// AuthMiddleware wraps handlers to require a valid token. The token is
// checked against the API once per request.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq := h.begin(w, r)
		if rq.store.Token() == "" {
			h.redirect(w, r, rq, "/login")
			return
		}

		user, err := rq.client.Me(r.Context())
		if errors.Is(err, api.ErrUnauthorized) {
			rq.toasts.Info(msgSessionExpired)
			h.redirect(w, r, rq, "/login")
			return
		}
		if err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to load user", log.FieldError, err)
			http.Error(w, "Service unavailable", http.StatusBadGateway)
			return
		}
		rq.user = &user

		next.ServeHTTP(w, withRequest(r, rq))
	})
}

// expired handles an API call that failed because the token was
// rejected. It reports whether the response was written.
func (h *Handlers) expired(w http.ResponseWriter, r *http.Request, rq *request, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	rq.toasts.Info(msgSessionExpired)
	h.redirect(w, r, rq, "/login")
	return true
}

func (h *Handlers) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

type flash struct {
	Kind    toast.Kind `json:"k"`
	Message string     `json:"m"`
}

func (h *Handlers) readFlash(r *http.Request, center *toast.Center) bool {
	c, err := r.Cookie(FlashCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return true
	}
	var items []flash
	if err := json.Unmarshal(data, &items); err != nil {
		return true
	}
	for _, f := range items {
		center.Add(f.Kind, f.Message)
	}
	return true
}

// redirect carries pending toasts into the flash cookie and sends the
// browser to path. HTMX requests get an HX-Location header instead.
func (h *Handlers) redirect(w http.ResponseWriter, r *http.Request, rq *request, path string) {
	if pending := rq.toasts.Drain(); len(pending) > 0 {
		items := make([]flash, 0, len(pending))
		for _, t := range pending {
			items = append(items, flash{Kind: t.Kind, Message: t.Message})
		}
		data, _ := json.Marshal(items)
		http.SetCookie(w, &http.Cookie{
			Name:     FlashCookieName,
			Value:    base64.RawURLEncoding.EncodeToString(data),
			Path:     "/",
			MaxAge:   60,
			HttpOnly: true,
			Secure:   h.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	} else if rq.flashRead {
		h.clearCookie(w, FlashCookieName)
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Location", `{"path":"`+path+`", "target":"#content"}`)
		return
	}
	http.Redirect(w, r, path, http.StatusFound)
}

// layout is the data every page template receives. View holds the page
// specific view model.
type layout struct {
	User   *models.User
	Active string
	Toasts []toast.Toast
	View   any
}

func (h *Handlers) funcs(rq *request) template.FuncMap {
	return template.FuncMap{
		"currency":    format.Currency,
		"currencyPtr": format.CurrencyPtr,
		"date":        format.Date,
		"shortDate":   format.ShortDate,
		"monthName":   format.MonthName,
		"shortMonth":  format.ShortMonthName,
		"truncate":    format.Truncate,
		"color":       rq.colors.Color,
		"pct":         func(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) },
		"dict":        dict,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
	}
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, rq *request, viewName, active string, data any) {
	h.renderTemplate(w, r, rq, viewName, "", active, data)
}

// renderTemplate executes target from viewName, or the whole page when
// target is empty.
func (h *Handlers) renderTemplate(w http.ResponseWriter, r *http.Request, rq *request, viewName, target, active string, data any) {
	tmpl, err := template.New("base.html").Funcs(h.funcs(rq)).ParseFiles(
		filepath.Join(h.templateDir, "base.html"),
		filepath.Join(h.templateDir, viewName),
	)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Template error", log.FieldError, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if target == "" {
		target = "base.html"
		if r.Header.Get("HX-Request") == "true" {
			target = "content"
		}
	}
	if rq.flashRead {
		h.clearCookie(w, FlashCookieName)
	}

	page := layout{User: rq.user, Active: active, Toasts: rq.toasts.Drain(), View: data}
	if err := tmpl.ExecuteTemplate(w, target, page); err != nil {
		h.logger.ErrorContext(r.Context(), "Template execution error", log.FieldError, err)
	}
}

// Root sends the browser to the dashboard.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// cursorOf reads month and year query parameters, defaulting to the
// current month. Invalid values fall back to the default.
func (h *Handlers) cursorOf(r *http.Request) views.MonthCursor {
	cursor := views.CursorOf(h.now())
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		cursor.Year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		cursor.Month = m
	}
	return cursor
}

// dict builds a map from alternating keys and values, for passing
// several values to a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

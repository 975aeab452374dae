package handlers

import (
	"errors"
	"net/http"

	"expense-dashboard/internal/log"
	"expense-dashboard/internal/validate"
	"expense-dashboard/internal/views"
)

// FormState holds the submitted email and the errors of a rejected form.
type FormState struct {
	Email  string
	Error  string
	Errors validate.Errors
}

// formError splits a views error into field errors and a form message.
func formError(err error) FormState {
	var vm FormState
	var fields validate.Errors
	if errors.As(err, &fields) {
		vm.Errors = fields
		return vm
	}
	vm.Error = views.MessageOf(err)
	if vm.Error == "" {
		vm.Error = "Something went wrong. Please try again."
	}
	return vm
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	// If already logged in, go straight to the dashboard
	if rq.store.Token() != "" {
		if _, err := rq.client.Me(r.Context()); err == nil {
			h.redirect(w, r, rq, "/dashboard")
			return
		}
	}
	h.render(w, r, rq, "login.html", "login", FormState{})
}

// Login handles the login form submission.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, rq, "login.html", "login", FormState{Error: "Invalid form submission"})
		return
	}

	email := r.FormValue("email")
	user, err := views.Login(r.Context(), rq.client, rq.store, rq.toasts, email, r.FormValue("password"))
	if err != nil {
		vm := formError(err)
		vm.Email = email
		if vm.Errors == nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Login failed", log.FieldError, err)
		}
		h.render(w, r, rq, "login.html", "login", vm)
		return
	}

	h.logger.InfoContext(r.Context(), "User logged in", log.FieldUserID, user.ID)
	h.redirect(w, r, rq, "/dashboard")
}

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.begin(w, r), "register.html", "register", FormState{})
}

// RegisterSubmit handles the registration form submission.
func (h *Handlers) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, rq, "register.html", "register", FormState{Error: "Invalid form submission"})
		return
	}

	email := r.FormValue("email")
	err := views.Register(r.Context(), rq.client, rq.toasts, email, r.FormValue("password"), r.FormValue("confirmPassword"))
	if err != nil {
		vm := formError(err)
		vm.Email = email
		h.render(w, r, rq, "register.html", "register", vm)
		return
	}
	h.redirect(w, r, rq, "/login")
}

// Logout handles user logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	if err := views.Logout(rq.store); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to clear session", log.FieldError, err)
	}
	h.redirect(w, r, rq, "/login")
}

package views

import (
	"context"
	"strings"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/session"
	"expense-dashboard/internal/toast"
	"expense-dashboard/internal/validate"
)

const (
	msgWelcomeBack        = "Welcome back!"
	msgInvalidCredentials = "Invalid email or password."
	msgAccountCreated     = "Account created. Please log in."
	msgEmailExists        = "An account with this email already exists."
)

// Login signs the user in and stores the session. Missing fields come
// back as validate.Errors, server rejections as a *FormError; the
// session is untouched on failure.
func Login(ctx context.Context, gw Gateway, store *session.Store, toasts *toast.Center, email, password string) (models.User, error) {
	if errs := validate.Login(email, password); !errs.OK() {
		return models.User{}, errs
	}

	resp, err := gw.Login(ctx, models.LoginRequest{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		switch api.CodeOf(err) {
		case models.CodeInvalidCredentials:
			return models.User{}, &FormError{Message: msgInvalidCredentials, Err: err}
		default:
			return models.User{}, &FormError{Message: msgSomethingWrong, Err: err}
		}
	}
	if err := store.Save(resp.Token, resp.User); err != nil {
		return models.User{}, &FormError{Message: msgSomethingWrong, Err: err}
	}
	toasts.Success(msgWelcomeBack)
	return resp.User, nil
}

// Register creates an account. The display name is the local part of
// the email. The user still has to log in afterwards.
func Register(ctx context.Context, gw Gateway, toasts *toast.Center, email, password, confirm string) error {
	if errs := validate.Register(email, password, confirm); !errs.OK() {
		return errs
	}

	email = strings.TrimSpace(email)
	_, err := gw.Register(ctx, models.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     validate.NameFromEmail(email),
	})
	if err != nil {
		if api.CodeOf(err) == models.CodeEmailExists {
			return &FormError{Message: msgEmailExists, Err: err}
		}
		return &FormError{Message: msgSomethingWrong, Err: err}
	}
	toasts.Success(msgAccountCreated)
	return nil
}

// Logout ends the session.
func Logout(store *session.Store) error {
	_, err := store.Clear()
	return err
}

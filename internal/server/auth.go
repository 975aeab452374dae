package server

import (
	"errors"
	"net/http"
	"strings"

	"expense-dashboard/internal/auth"
	"expense-dashboard/internal/log"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/storage"
	"expense-dashboard/internal/validate"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validate.Login(req.Email, req.Password); !errs.OK() {
		writeError(w, http.StatusBadRequest, models.CodeValidation, firstMessage(errs))
		return
	}

	rec, err := s.db.GetUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.internalError(w, r, "get user", err)
		return
	}
	if err != nil || !auth.CheckPassword(req.Password, rec.PasswordHash) {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Login failed", "email", req.Email)
		writeError(w, http.StatusUnauthorized, models.CodeInvalidCredentials, "Invalid email or password")
		return
	}

	s.issue(w, r, http.StatusOK, rec.User)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	email := strings.TrimSpace(req.Email)
	if errs := validate.Register(email, req.Password, req.Password); !errs.OK() {
		writeError(w, http.StatusBadRequest, models.CodeValidation, firstMessage(errs))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = validate.NameFromEmail(email)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.internalError(w, r, "hash password", err)
		return
	}
	user, err := s.db.CreateUser(r.Context(), email, name, hash)
	if errors.Is(err, storage.ErrConflict) {
		writeError(w, http.StatusConflict, models.CodeEmailExists, "An account with this email already exists")
		return
	}
	if err != nil {
		s.internalError(w, r, "create user", err)
		return
	}

	s.logger.InfoContext(r.Context(), "User registered", log.FieldUserID, user.ID)
	s.issue(w, r, http.StatusCreated, user)
}

func (s *Server) issue(w http.ResponseWriter, r *http.Request, status int, user models.User) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		s.internalError(w, r, "issue token", err)
		return
	}
	writeJSON(w, status, models.AuthResponse{Token: token, User: user})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user, err := s.db.GetUserByID(r.Context(), userIDFrom(r))
	if err != nil {
		s.storageError(w, r, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// firstMessage picks a stable message out of a validation result.
func firstMessage(errs validate.Errors) string {
	for _, field := range []string{
		validate.FieldEmail,
		validate.FieldPassword,
		validate.FieldConfirmPassword,
		validate.FieldName,
		validate.FieldAmount,
		validate.FieldCategory,
		validate.FieldDate,
		validate.FieldDescription,
	} {
		if msg, ok := errs[field]; ok {
			return msg
		}
	}
	return "Invalid request"
}

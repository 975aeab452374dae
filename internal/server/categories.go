package server

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"expense-dashboard/internal/log"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/storage"
	"expense-dashboard/internal/validate"
)

const defaultCategoryIcon = "🏷️"

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.db.ListCategories(r.Context(), userIDFrom(r))
	if err != nil {
		s.storageError(w, r, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	name, errs := validate.CategoryName(req.Name)
	if !errs.OK() {
		writeError(w, http.StatusBadRequest, models.CodeValidation, errs[validate.FieldName])
		return
	}
	icon := strings.TrimSpace(req.Icon)
	if icon == "" {
		icon = defaultCategoryIcon
	}
	if utf8.RuneCountInString(icon) > 10 {
		writeError(w, http.StatusBadRequest, models.CodeValidation, "Icon is too long")
		return
	}

	c, err := s.db.CreateCategory(r.Context(), userIDFrom(r), name, icon)
	if errors.Is(err, storage.ErrConflict) {
		writeError(w, http.StatusConflict, models.CodeCategoryExists, "A category with this name already exists")
		return
	}
	if err != nil {
		s.internalError(w, r, "create category", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	moved, err := s.db.DeleteCategory(r.Context(), userIDFrom(r), id)
	if err != nil {
		s.storageError(w, r, "delete category", err)
		return
	}
	s.logger.InfoContext(r.Context(), "Category deleted",
		log.FieldUserID, userIDFrom(r),
		log.FieldCategoryID, id,
		"reassigned", moved,
	)
	w.WriteHeader(http.StatusNoContent)
}

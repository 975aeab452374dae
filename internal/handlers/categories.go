package handlers

import (
	"net/http"
	"strconv"

	"expense-dashboard/internal/log"
	"expense-dashboard/internal/views"
)

// CategoriesViewModel is the data passed to the categories template.
type CategoriesViewModel struct {
	*views.Categories
	Name string
	FormState
}

// Categories renders the default and custom categories.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	c := views.NewCategories(rq.client, rq.toasts)
	if err := c.Load(r.Context()); h.expired(w, r, rq, err) {
		return
	}
	h.render(w, r, rq, "categories.html", "categories", CategoriesViewModel{Categories: c})
}

// CreateCategory adds a custom category.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := views.NewCategories(rq.client, rq.toasts)
	name := r.FormValue("name")
	err := c.Add(r.Context(), name)
	if h.expired(w, r, rq, err) {
		return
	}
	if err != nil {
		_ = c.Load(r.Context())
		h.render(w, r, rq, "categories.html", "categories", CategoriesViewModel{
			Categories:    c,
			Name:          name,
			FormState: formError(err),
		})
		return
	}
	h.redirect(w, r, rq, "/categories")
}

// DeleteCategory removes a custom category. Its expenses move to Other.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	rq := h.begin(w, r)
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	c := views.NewCategories(rq.client, rq.toasts)
	err = c.Delete(r.Context(), id)
	if h.expired(w, r, rq, err) {
		return
	}
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to delete category", log.FieldCategoryID, id, log.FieldError, err)
	}
	h.redirect(w, r, rq, "/categories")
}

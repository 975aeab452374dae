package views

import (
	"context"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/toast"
	"expense-dashboard/internal/validate"
)

const (
	msgCategoryAdded        = "Category added."
	msgCategoryExists       = "A category with this name already exists."
	msgCategorySaveFailed   = "Could not save category. Please try again."
	msgCategoryDeleted      = "Category deleted."
	msgCategoryDeleteFailed = "Could not delete category. Please try again."
)

// Categories lists the default and custom categories and manages the
// custom ones.
type Categories struct {
	gw     Gateway
	toasts *toast.Center

	All []models.Category
	Err error
}

func NewCategories(gw Gateway, toasts *toast.Center) *Categories {
	return &Categories{gw: gw, toasts: toasts}
}

// Load fetches every category.
func (c *Categories) Load(ctx context.Context) error {
	cats, err := c.gw.ListCategories(ctx)
	c.Err = err
	if err != nil {
		c.All = nil
		return err
	}
	c.All = cats
	return nil
}

// Defaults returns the seeded categories.
func (c *Categories) Defaults() []models.Category {
	return c.filter(true)
}

// Custom returns the user's own categories.
func (c *Categories) Custom() []models.Category {
	return c.filter(false)
}

func (c *Categories) filter(isDefault bool) []models.Category {
	out := []models.Category{}
	for _, cat := range c.All {
		if cat.IsDefault == isDefault {
			out = append(out, cat)
		}
	}
	return out
}

// Add creates a custom category and refetches the list. Invalid names
// come back as validate.Errors, server rejections as a *FormError.
func (c *Categories) Add(ctx context.Context, name string) error {
	name, errs := validate.CategoryName(name)
	if !errs.OK() {
		return errs
	}

	if _, err := c.gw.CreateCategory(ctx, models.CreateCategoryRequest{Name: name}); err != nil {
		if api.CodeOf(err) == models.CodeCategoryExists {
			return &FormError{Message: msgCategoryExists, Err: err}
		}
		return &FormError{Message: msgCategorySaveFailed, Err: err}
	}
	c.toasts.Success(msgCategoryAdded)
	_ = c.Load(ctx)
	return nil
}

// Delete removes a custom category and refetches the list. Its expenses
// are moved to the fallback category by the server.
func (c *Categories) Delete(ctx context.Context, id int64) error {
	if err := c.gw.DeleteCategory(ctx, id); err != nil {
		c.toasts.Error(msgCategoryDeleteFailed)
		return err
	}
	c.toasts.Success(msgCategoryDeleted)
	_ = c.Load(ctx)
	return nil
}

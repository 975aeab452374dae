package models

// Category groups expenses. Default categories are shared by every user.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	IsDefault bool   `json:"isDefault"`
}

// CreateCategoryRequest is the body of a create category call.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// FallbackCategory receives the expenses of a deleted custom category.
const FallbackCategory = "Other"

// DefaultCategories are seeded for every installation, in display order.
var DefaultCategories = []CreateCategoryRequest{
	{Name: "Food", Icon: "🍔"},
	{Name: "Transportation", Icon: "🚌"},
	{Name: "Housing", Icon: "🏠"},
	{Name: "Utilities", Icon: "💡"},
	{Name: "Entertainment", Icon: "🎮"},
	{Name: "Healthcare", Icon: "🏥"},
	{Name: "Shopping", Icon: "🛍️"},
	{Name: FallbackCategory, Icon: "📦"},
}

package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldMonth      = "month"
	FieldYear       = "year"
	FieldExpenseID  = "expense_id"
	FieldCategoryID = "category_id"
	FieldWidget     = "widget"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentAPI     = "api"
	ComponentClient  = "client"
	ComponentStorage = "storage"
	ComponentAuth    = "auth"
	ComponentWeb     = "web"
	ComponentCLI     = "cli"
)

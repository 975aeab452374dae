package models

// Error codes carried in ErrorBody.Error.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeCategoryExists     = "CATEGORY_EXISTS"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorBody is the JSON body of every non-2xx API response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

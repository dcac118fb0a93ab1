package errors

import (
	"net/http"
	"strings"
)

// ErrorResponse is the JSON body rendered for every failed request.
type ErrorResponse struct {
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Stack   string   `json:"stack,omitempty"`
}

// HTTPError carries an HTTP status alongside a domain error message.
// Validation errors additionally carry the flat list of field messages.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to its JSON representation.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
		Errors:  e.Fields,
	}
}

// NewValidationError wraps field-level validation messages as a 400.
func NewValidationError(fields ...string) *HTTPError {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = strings.Join(fields, "; ")
	}
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		Fields:     fields,
	}
}

// NewAuthError is the generic 401. The message never reveals whether the
// email or the password was wrong.
func NewAuthError(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusUnauthorized,
		Code:       "UNAUTHORIZED",
		Message:    message,
	}
}

// NewForbiddenError is the 403 returned when the actor's role is insufficient.
func NewForbiddenError(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusForbidden,
		Code:       "FORBIDDEN",
		Message:    message,
	}
}

// NewNotFoundError is the 404 for absent records. Malformed identifiers map
// here as well, never to a 500.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    message,
	}
}

// NewConflictError reports a duplicate unique field. Rendered as 400.
func NewConflictError(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Code:       "CONFLICT",
		Message:    message,
	}
}

// NewInternalError is the catch-all 500.
func NewInternalError() *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
	}
}

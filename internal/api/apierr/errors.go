package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/plugin"
	"github.com/res5515/jcommune/internal/services/session"
	"github.com/res5515/jcommune/internal/validation"
)

// APIError represents an API error response
type APIError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeSectionNotFound     = "SECTION_NOT_FOUND"
	CodeBranchNotFound      = "BRANCH_NOT_FOUND"
	CodeTopicNotFound       = "TOPIC_NOT_FOUND"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeProviderUnavailable = "AUTH_PROVIDER_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Map model errors
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeUserNotFound, Message: "User not found"}}
	case errors.Is(err, model.ErrSectionNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeSectionNotFound, Message: "Section not found"}}
	case errors.Is(err, model.ErrBranchNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeBranchNotFound, Message: "Branch not found"}}
	case errors.Is(err, model.ErrTopicNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeTopicNotFound, Message: "Topic not found"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{Code: CodeUsernameExists, Message: "Username already exists"}}

	// Session errors
	case errors.Is(err, session.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Invalid or expired session"}}

	// A broken identity provider is distinguishable from bad credentials
	case errors.Is(err, plugin.ErrNoConnection), errors.Is(err, plugin.ErrUnexpectedProvider):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeProviderUnavailable, Message: "Authentication service unavailable"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewInvalidCredentialsError creates the generic failed-login error
func NewInvalidCredentialsError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeInvalidCredentials, Message: "Invalid username or password"}}
}

// NewValidationError creates a 422 carrying field-level errors
func NewValidationError(fields []validation.FieldError) error {
	return &httpError{http.StatusUnprocessableEntity, APIError{
		Code:    CodeValidationFailed,
		Message: "Validation failed",
		Fields:  fields,
	}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}

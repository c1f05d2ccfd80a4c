// Package errors provides standardized error handling for the HTTP boundary.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequestBody      ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodeRequestValidationFailed ErrorCode = "REQUEST_VALIDATION_FAILED"
	ErrCodeRequestTooLarge         ErrorCode = "REQUEST_TOO_LARGE"

	ErrCodeUnsupportedEntityType ErrorCode = "UNSUPPORTED_ENTITY_TYPE"
	ErrCodeGeneratorDisabled     ErrorCode = "GENERATOR_DISABLED"

	ErrCodeRegistryLoadFailed ErrorCode = "REGISTRY_LOAD_FAILED"
	ErrCodeConfigInvalid      ErrorCode = "CONFIG_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestBodyError creates a non-retryable malformed-JSON error.
func NewInvalidRequestBodyError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequestBody,
		Message:   "Request body is not valid JSON",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestValidationFailedError creates a non-retryable schema validation error.
func NewRequestValidationFailedError(details []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestValidationFailed,
		Message:   "Request body failed schema validation",
		Details:   strings.Join(details, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"violations": details},
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestTooLargeError creates a non-retryable oversized body error.
func NewRequestTooLargeError(limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestTooLarge,
		Message:   "Request body too large",
		Details:   fmt.Sprintf("limit: %d bytes", limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedEntityTypeError creates a non-retryable unknown kind error.
func NewUnsupportedEntityTypeError(kind string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedEntityType,
		Message:   "Unsupported entity type",
		Details:   fmt.Sprintf("entityType: %s", kind),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGeneratorDisabledError creates a non-retryable error for a kind turned off in config.
func NewGeneratorDisabledError(kind string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeneratorDisabled,
		Message:   "Generator is disabled",
		Details:   fmt.Sprintf("entityType: %s", kind),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistryLoadFailedError wraps a failure to read the registry override file.
func NewRegistryLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryLoadFailed,
		Message:   "Generator registry could not be loaded",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError wraps a configuration problem detected at startup.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected fault.
func NewInternalError(err error) *StandardError {
	details := "unknown error"
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatusMapping maps internal error codes to response status codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeInvalidRequestBody:      http.StatusBadRequest,
	ErrCodeRequestValidationFailed: http.StatusUnprocessableEntity,
	ErrCodeRequestTooLarge:         http.StatusRequestEntityTooLarge,
	ErrCodeUnsupportedEntityType:   http.StatusNotFound,
	ErrCodeGeneratorDisabled:       http.StatusNotFound,
	ErrCodeRegistryLoadFailed:      http.StatusInternalServerError,
	ErrCodeConfigInvalid:           http.StatusInternalServerError,
	ErrCodeInternal:                http.StatusInternalServerError,
}

// HTTPStatus returns the status code for an error code, 500 when unmapped.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 4. Utility Functions
// ==========================

// IsClientError reports whether the code maps to a 4xx status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatus(code)
	return status >= 400 && status < 500
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "REQUEST"):
		return "REQUEST"
	case strings.Contains(codeStr, "ENTITY") || strings.Contains(codeStr, "GENERATOR"):
		return "GENERATION"
	case strings.Contains(codeStr, "REGISTRY") || strings.Contains(codeStr, "CONFIG"):
		return "STARTUP"
	default:
		return "OTHER"
	}
}

// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"canon-builder/internal/common/metrics"
)

// ErrorHandler turns errors into JSON error responses with standardized codes.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// ErrorResponse is the envelope written for every failed request.
type ErrorResponse struct {
	Error *StandardError `json:"error"`
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// WriteError handles any error raised while serving r.
func (h *ErrorHandler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(r, stdErr, status)
	metrics.RequestErrors.WithLabelValues(string(stdErr.Code)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(ErrorResponse{Error: stdErr}); encErr != nil {
		h.logger.Error("failed to encode error response", map[string]interface{}{"error": encErr})
	}
}

// Normalize ensures we always have a StandardError
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) logError(r *http.Request, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"method":        r.Method,
		"path":          r.URL.Path,
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if IsClientError(stdErr.Code) {
		h.logger.Warn("request rejected", fields)
		return
	}
	h.logger.Error("request failed", fields)
}

package errors

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// HTTPAdapter handles error presentation and status-code determination for
// the admin HTTP API.
type HTTPAdapter struct {
	logger *slog.Logger
}

// NewHTTPAdapter creates a new HTTP error adapter. A nil logger falls back to
// the default package logger.
func NewHTTPAdapter(logger *slog.Logger) *HTTPAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPAdapter{logger: logger}
}

// HTTPErrorResponse is the standard JSON error payload.
type HTTPErrorResponse struct {
	Error    string         `json:"error"`
	Category string         `json:"category,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// StatusCodeFor maps an error to an HTTP status code. Unknown errors map
// to 500.
func (a *HTTPAdapter) StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch GetCategory(err) {
	case CategoryValidation, CategoryConfig:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryCapacity:
		return http.StatusConflict
	case CategoryReference:
		return http.StatusUnprocessableEntity
	case CategoryPublish:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes a JSON error response and logs server-side failures.
func (a *HTTPAdapter) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	status := a.StatusCodeFor(err)
	payload := HTTPErrorResponse{Error: err.Error()}
	var e *Error
	if errors.As(err, &e) {
		payload.Error = e.Message
		payload.Category = string(e.Category)
		payload.Details = e.Context
	}

	if status >= http.StatusInternalServerError {
		a.logger.Error("Request failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(payload); encErr != nil {
		a.logger.Error("Failed to encode error response", slog.String("error", encErr.Error()))
	}
}

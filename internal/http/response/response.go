// Package response provides the JSON envelope shared by the huma API and the
// plain handlers that answer before a request reaches huma.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "github.com/italianiuk/italianiuk-server/internal/errors"
)

// Version of the response envelope.
const Version = 1

// Envelope wraps successful responses and uncoded errors.
type Envelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorEnvelope wraps coded errors.
type ErrorEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NotFound writes a 404 with code NOT_FOUND.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.NotFound(message), logger)
}

// TooManyRequests writes a 429 with code RATE_LIMITED.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.RateLimited(message), logger)
}

// Error writes a coded domain error with its HTTP status. Details are
// dropped for server errors.
func Error(w http.ResponseWriter, err *domainerrors.Error, logger *slog.Logger) {
	status := err.HTTPStatus()
	env := ErrorEnvelope{
		Version: Version,
		Code:    string(err.Code),
		Message: err.Message,
	}
	if status < http.StatusInternalServerError {
		env.Details = err.Details
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(env); encErr != nil && logger != nil {
		logger.Error("failed to encode JSON response", "error", encErr)
	}
}

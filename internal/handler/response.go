package handler

// Response helpers shared by every handler. Responses always carry the same
// error shape:
//
//	{"error": "not_found", "message": "todo not found with id abc123"}
//
// so the frontend can parse failures uniformly regardless of status code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable type, e.g. "forbidden"
	Message string `json:"message"` // human-readable description
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body write, hence the strict ordering here.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status code and sends it.
//
// The service layer returns apperror sentinels; this is the single place
// they become status codes. Unknown errors collapse to a generic 500 —
// raw internal messages (SQL, file paths) never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		case errors.Is(err, apperror.ErrUnavailable):
			status = http.StatusServiceUnavailable
			errorType = "unavailable"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

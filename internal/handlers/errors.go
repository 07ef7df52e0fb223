package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/sharebnb/internal/repo"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and "fields"
// so one response reports every violation. status is typically 400.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// WriteJSON sends v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRepoError maps repository error kinds to HTTP statuses: duplicate,
// bad reference, and empty patch are 400; missing row is 404; failed
// authentication is 401. Anything else is logged and answered generically.
func writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repo.ErrDuplicate),
		errors.Is(err, repo.ErrNoFields),
		errors.Is(err, repo.ErrBadReference):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repo.ErrUnauthorized):
		JSONError(w, err.Error(), http.StatusUnauthorized)
	default:
		slog.Error("repository error", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

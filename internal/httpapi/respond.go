package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/taskforge/taskd/internal/validate"
)

// writeJSON serializes v with the given status. Encoding failures after
// the header is written can only be logged by the caller's middleware.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends a single-message error body: {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFieldErrors sends per-field validation details: {"errors": [...]}.
func writeFieldErrors(w http.ResponseWriter, fields []validate.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string][]validate.FieldError{"errors": fields})
}

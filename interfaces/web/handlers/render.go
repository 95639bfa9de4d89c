// Package handlers render provides HTTP response utilities.
package handlers

import (
	"encoding/json"
	"net/http"

	"inmohub/domain/listing"
)

// RespondJSON writes a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// errorResponse is the uniform error payload.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondError writes a human-readable error payload.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, errorResponse{Error: message})
}

// RespondValidationError writes field-keyed validation problems as 422.
func RespondValidationError(w http.ResponseWriter, errs listing.ValidationErrors) {
	RespondJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:  "validation failed",
		Fields: errs,
	})
}

// RespondNotAvailable writes the distinct not-available payload used by the
// permalink detail view for missing, unpublished or deleted records.
func RespondNotAvailable(w http.ResponseWriter) {
	RespondJSON(w, http.StatusNotFound, map[string]string{
		"error":  "property not available",
		"reason": "missing_or_unpublished",
	})
}

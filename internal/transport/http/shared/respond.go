// Package shared centralizes JSON response envelopes so every handler
// answers errors and payloads the same way.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "condogov/pkg/domain-errors"
)

// WriteJSON writes a JSON payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError translates a domain error into its HTTP status and a JSON
// envelope carrying the code and the verbatim message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), map[string]string{
		"error":   string(code),
		"message": err.Error(),
	})
}

package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON error shape the API exposes. The registry's
// original consumers expect the bare {"error": ...} form, optionally echoing
// the requested code in "short".
type ErrorResponse struct {
	Error string `json:"error"`
	Short any    `json:"short,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent, so the response can't change; just log.
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteErrorShort writes a JSON error response echoing the requested code.
func WriteErrorShort(w http.ResponseWriter, status int, message string, short any) {
	WriteJSON(w, status, ErrorResponse{Error: message, Short: short})
}

package api

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the common error shape {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ErrorWithMessage writes {"error": ..., "message": ...} for failures that
// carry user-actionable guidance alongside the machine-readable code.
func ErrorWithMessage(w http.ResponseWriter, status int, errText, message string) {
	JSON(w, status, map[string]string{"error": errText, "message": message})
}

// ValidationError writes {"error": ..., "details": {field: [messages]}}.
func ValidationError(w http.ResponseWriter, message string, details map[string][]string) {
	JSON(w, http.StatusBadRequest, struct {
		Error   string              `json:"error"`
		Details map[string][]string `json:"details"`
	}{Error: message, Details: details})
}

package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error shape every failure response carries.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes a sanitized error message in the standard error shape.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	_ = WriteJSON(w, statusCode, ErrorBody{Error: message})
}

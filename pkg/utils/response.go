package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/zhouzirui/interview-prep/backend/internal/apperror"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondJSON writes payload as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError writes an error body with a client-facing message.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorBody{Message: message})
}

// RespondAppError maps err to a status code and error body. Errors that are not *apperror.Error
// are reported as 500 with fallback as the message.
func RespondAppError(w http.ResponseWriter, err error, fallback string) {
	appErr := apperror.As(err, fallback)
	status := apperror.Status(appErr)
	if status >= http.StatusInternalServerError {
		log.Printf("[http] %s: %v", appErr.Message, err)
	}
	RespondJSON(w, status, ErrorBody{
		Message: appErr.Message,
		Error:   appErr.Detail(),
	})
}

// DecodeJSON decodes the request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

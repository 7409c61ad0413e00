package handler

import (
	"encoding/json"
	"net/http"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// Response messages shared with the site's frontend
const (
	MessageReceived         = "Message received successfully"
	MessageValidationFailed = "Validation failed"
	MessageInternalError    = "Internal server error"
	MessageMethodNotAllowed = "Method not allowed"
	MessageNotFound         = "Not found"
)

// APIResponse is the envelope for every JSON API response
type APIResponse struct {
	OK      bool                     `json:"ok"`
	Message string                   `json:"message,omitempty"`
	Errors  []models.ValidationIssue `json:"errors,omitempty"`
}

// MessageResponse is a bare message body without the ok flag
type MessageResponse struct {
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent; nothing useful to do on failure
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a failure envelope
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, APIResponse{OK: false, Message: message})
}

// respondSuccess writes a successful response with 200 OK
func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// MethodNotAllowed answers requests whose path exists but not for this method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, MessageResponse{Message: MessageMethodNotAllowed})
}

// NotFound answers unknown API routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, MessageNotFound)
}

package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/eventhub/eventhub/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"
	ErrCodeUninitialized  = "backend_uninitialized"
	ErrCodeRemoteFailure  = "remote_failure"
	ErrCodeInternalError  = "internal_error"
	ErrCodeInvalidCredentials = "invalid_credentials"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// Notifications carries the toasts queued for the client since its last response.
// swagger:model APIResponse
type APIResponse struct {
	Data          any                   `json:"data"`
	Error         *APIError             `json:"error"`
	Notifications []domain.Notification `json:"notifications"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and notifications.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any, notes ...domain.Notification) {
	writeJSON(w, statusCode, APIResponse{Data: data, Notifications: notes})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string, notes ...domain.Notification) {
	writeJSON(w, statusCode, APIResponse{
		Error:         &APIError{Code: code, Message: message},
		Notifications: notes,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, resp APIResponse) {
	if resp.Notifications == nil {
		resp.Notifications = []domain.Notification{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// Redirect sends a 303 See Other to route.
func Redirect(w http.ResponseWriter, r *http.Request, route string) {
	http.Redirect(w, r, route, http.StatusSeeOther)
}

package helpers

import (
	"errors"
	"net/http"

	"github.com/eventhub/eventhub/internal/domain"
)

// StatusForError maps a domain error to its HTTP status and error code.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeInvalidCredentials
	case errors.Is(err, domain.ErrAlreadyJoined), errors.Is(err, domain.ErrAlreadyReviewed),
		errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrUninitialized):
		return http.StatusServiceUnavailable, ErrCodeUninitialized
	case errors.Is(err, domain.ErrRemoteFailure):
		return http.StatusBadGateway, ErrCodeRemoteFailure
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}

// WriteDomainError writes err with the status StatusForError picks for it.
func WriteDomainError(w http.ResponseWriter, err error, notes ...domain.Notification) {
	status, code := StatusForError(err)
	WriteJSONError(w, status, code, err.Error(), notes...)
}

package domain

import "errors"

// Sentinel errors shared by the stores, the services and the delivery layer.
var (
	ErrNotAuthenticated   = errors.New("user not authenticated")
	ErrAlreadyJoined      = errors.New("you have already joined this event")
	ErrAlreadyReviewed    = errors.New("event has already been reviewed")
	ErrRemoteFailure      = errors.New("remote failure")
	ErrUninitialized      = errors.New("backend client not initialized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrDuplicateEmail     = errors.New("email already in use")
)

// RemoteError wraps a failure returned by the remote store. It matches
// ErrRemoteFailure with errors.Is and unwraps to the store error.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == ErrRemoteFailure }

// Remote wraps err as a RemoteError for op. Nil stays nil; errors that already
// have their own place in the taxonomy pass through unchanged.
func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUninitialized) || errors.Is(err, ErrAlreadyJoined) || errors.Is(err, ErrAlreadyReviewed) ||
		errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrInvalidInput) {
		return err
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	return &RemoteError{Op: op, Err: err}
}

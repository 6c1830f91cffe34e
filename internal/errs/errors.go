package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	// ErrInvalidID marks an identifier that does not decode to a native store id.
	ErrInvalidID = errors.New("invalid_id")
	// ErrAuthFailed covers both an unknown login and a wrong password.
	ErrAuthFailed = errors.New("auth_failed")
)

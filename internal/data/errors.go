package data

import "errors"

// Sentinel errors returned by the stores. Handlers map these to HTTP status
// codes with errors.Is; anything else is treated as an internal failure.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden means the acting account does not own the record it is
	// trying to mutate.
	ErrForbidden = errors.New("not allowed")

	// ErrDuplicate means a uniqueness constraint was violated (e.g. an email
	// address that is already registered).
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidCredentials covers both "unknown email" and "wrong password"
	// so the login response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled means the account exists but has been switched off
	// entirely, independent of the faculty lifecycle status.
	ErrAccountDisabled = errors.New("account is disabled")
)

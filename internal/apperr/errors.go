// Package apperr defines the error taxonomy shared by services,
// middleware and handlers. Handlers translate these to HTTP statuses in
// one place (api/httpx); everything below the handlers wraps them with
// %w and never touches HTTP.
package apperr

import "errors"

var (
	// ErrDuplicateIdentity: username or email already taken.
	ErrDuplicateIdentity = errors.New("username or email already in use")
	// ErrInvalidEmail: email does not match local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidCredentials covers both unknown username and wrong
	// password; callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenMissing = errors.New("no session token")
	ErrTokenInvalid = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")

	// ErrForbidden: authenticated but not allowed (role or ownership).
	ErrForbidden = errors.New("forbidden")

	ErrNotFound = errors.New("not found")

	// ErrInvalidInput: malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")
)

// Package service implements the platform's use cases on top of the
// repositories: identity and sessions, the unified clinic catalog
// with recomputed rating aggregates, and the booking/review
// lifecycle. Services mirror successful writes to the optional remote
// gateway and record audited actions through the Auditor.
package service

import "errors"

// ErrRequiresAuth is returned by operations that need a signed-in
// account. Handlers translate it into HTTP 401.
var ErrRequiresAuth = errors.New("authentication required")

// ErrUserNotFound is returned by local login when no account matches
// the email.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials is returned when the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailUnconfirmed is returned when the remote service created the
// account but withheld a session until the confirmation mail is
// opened.
var ErrEmailUnconfirmed = errors.New("email confirmation pending")

// ErrRemoteRejected is returned when a write that must reach the
// remote mirror (review submission) could not be persisted there.
// Review submission fails closed; the best-effort mirrors never
// return this error.
var ErrRemoteRejected = errors.New("remote persistence rejected the write")

// ValidationError reports invalid user input. The message is shown to
// the end user as-is, so it is written in the product's language.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// Package repository implements the local persistent store on top of
// database/sql. Sentinel errors declared here let higher layers
// distinguish failure scenarios without inspecting driver errors:
// ErrForbidden means the caller does not own the resource it is
// touching, ErrConflict means existing state blocks the write (for
// example answering a review that already carries a reply), and
// ErrEmailExists reports a duplicate registration.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot proceed because of
// conflicting state, such as replying to a review that was already
// answered. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by UserRepo.Create when the normalized
// email address is already registered.
var ErrEmailExists = errors.New("email already exists")

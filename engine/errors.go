package engine

import "errors"

// Business-rule failure taxonomy. Handlers map these to HTTP statuses;
// anything not wrapping one of them is an infrastructure fault.
var (
	// ErrUnauthorized is returned when no valid session/actor is supplied.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the actor's role or ownership is insufficient.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a referenced id is absent.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for malformed or out-of-range input.
	ErrValidation = errors.New("invalid input")
	// ErrConflict is returned when a trip has already been published to an event.
	ErrConflict = errors.New("conflict")
)

package service

import "errors"

var (
	// ErrNotFound is returned when the target record does not exist or is
	// deactivated.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned when the actor may not act on the target
	// record or perform the requested action.
	ErrUnauthorized = errors.New("actor not authorized")

	// ErrNotEditable is returned when a request is mutated outside of DRAFT.
	ErrNotEditable = errors.New("request can only be edited in draft state")
)

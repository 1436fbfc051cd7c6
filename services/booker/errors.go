package booker

import "errors"

var (
	// ErrNotFound marks display IDs that are not in the booker's session.
	ErrNotFound = errors.New("not found")

	// ErrNotRegistered is returned when the session has no booker yet.
	ErrNotRegistered = errors.New("booker not registered")

	// ErrPrisonerNotMatched is returned when registration details do not
	// match a prisoner.
	ErrPrisonerNotMatched = errors.New("prisoner details do not match")
)

package orchestration

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the orchestration API answers 404.
	ErrNotFound = errors.New("orchestration: resource not found")

	// ErrInternal is returned when a request could not be built or sent.
	ErrInternal = errors.New("orchestration client: internal error")

	// ErrInvalidResponse is returned for unexpected statuses or undecodable bodies.
	ErrInvalidResponse = errors.New("orchestration client: invalid response")
)

// Prisoner validation reasons.
const (
	ReasonPrisonerReleased                     = "PRISONER_RELEASED"
	ReasonPrisonerTransferredSupportedPrison   = "PRISONER_TRANSFERRED_SUPPORTED_PRISON"
	ReasonPrisonerTransferredUnsupportedPrison = "PRISONER_TRANSFERRED_UNSUPPORTED_PRISON"
	ReasonRegisteredPrisonNotSupported         = "REGISTERED_PRISON_NOT_SUPPORTED"
)

// Booking validation reasons.
const (
	ReasonApplicationPrisonerNotFound       = "APPLICATION_INVALID_PRISONER_NOT_FOUND"
	ReasonApplicationPrisonPrisonerMismatch = "APPLICATION_INVALID_PRISON_PRISONER_MISMATCH"
	ReasonApplicationSessionNotAvailable    = "APPLICATION_INVALID_SESSION_NOT_AVAILABLE"
	ReasonApplicationNoSlotCapacity         = "APPLICATION_INVALID_NO_SLOT_CAPACITY"
	ReasonApplicationNoVOBalance            = "APPLICATION_INVALID_NO_VO_BALANCE"
)

// ValidationError is a structured 422 response carrying reason codes.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("orchestration validation failed: %s", strings.Join(e.Reasons, ","))
}

// Reason returns the first reason code, or "" when none was given.
func (e *ValidationError) Reason() string {
	if len(e.Reasons) == 0 {
		return ""
	}
	return e.Reasons[0]
}

// HasReason reports whether reason is among the returned codes.
func (e *ValidationError) HasReason(reason string) bool {
	for _, r := range e.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

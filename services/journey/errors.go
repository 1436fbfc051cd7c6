package journey

import (
	"errors"
	"fmt"
	"strings"

	"bookvisit/models"
)

var (
	// ErrNotFound marks submitted identifiers that do not belong to the
	// booker. It is reported as a missing page, not a form error.
	ErrNotFound = errors.New("not found")

	// ErrNoJourney is returned when a step runs without a journey in the session.
	ErrNoJourney = errors.New("no booking journey in session")
)

// Form fields carrying validation errors.
const (
	FieldPrisonerDisplayID         = "prisonerDisplayId"
	FieldVisitSession              = "visitSession"
	FieldAdditionalSupportRequired = "additionalSupportRequired"
	FieldAdditionalSupport         = "additionalSupport"
	FieldContact                   = "contact"
	FieldSomeoneElseName           = "someoneElseName"
	FieldGetUpdatesBy              = "getUpdatesBy"
	FieldEmail                     = "email"
	FieldPhone                     = "phone"
)

// Field error kinds.
const (
	KindRequired = "Required"
	KindTooLong  = "TooLong"
	KindTooShort = "TooShort"
	KindInvalid  = "Invalid"
)

// MessageSessionNoLongerAvailable is flashed when a booking is refused
// because the chosen session filled up or was withdrawn.
const MessageSessionNoLongerAvailable = "SessionNoLongerAvailable"

// ValidationError carries field-level failures back to the step that
// produced them.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Kind)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, ", "))
}

func (e *ValidationError) add(field, kind string) {
	e.Errors = append(e.Errors, models.FieldError{Field: field, Kind: kind})
}

func (e *ValidationError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

func fieldError(field, kind string) error {
	return &ValidationError{Errors: []models.FieldError{{Field: field, Kind: kind}}}
}

package eligibility

import "fmt"

// Validation error kinds for a visitor selection.
const (
	KindNoVisitorsSelected       = "NoVisitorsSelected"
	KindTotalVisitorsExceeded    = "TotalVisitorsExceeded"
	KindMaxAdultVisitorsExceeded = "MaxAdultVisitorsExceeded"
	KindMaxChildVisitorsExceeded = "MaxChildVisitorsExceeded"
	KindNoAdultPresent           = "NoAdultPresent"
)

// VisitorsField is the form field visitor-selection errors are attached to.
const VisitorsField = "visitorDisplayIds"

// ValidationError is a rule failure with a machine-readable kind and the
// form field it belongs to. Display text is chosen by the presentation layer.
type ValidationError struct {
	Kind  string
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Kind)
}

func newSelectionError(kind string) error {
	return &ValidationError{Kind: kind, Field: VisitorsField}
}

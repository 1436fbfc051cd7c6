package models

import "strings"

// Session restrictions.
const (
	SessionRestrictionOpen   = "OPEN"
	SessionRestrictionClosed = "CLOSED"
)

// SessionTimeSlot holds start and end as "HH:MM".
type SessionTimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailableVisitSession is a bookable visiting slot on a given date.
type AvailableVisitSession struct {
	SessionDate              string          `json:"sessionDate"` // YYYY-MM-DD
	SessionTemplateReference string          `json:"sessionTemplateReference"`
	SessionTimeSlot          SessionTimeSlot `json:"sessionTimeSlot"`
	SessionRestriction       string          `json:"sessionRestriction,omitempty"`
	NeedsReview              bool            `json:"needsReview,omitempty"`
}

// ID returns the composite "<date>_<reference>" identifier used in form values.
func (s AvailableVisitSession) ID() string {
	return VisitSessionID(s.SessionDate, s.SessionTemplateReference)
}

// VisitSessionID builds the composite session identifier.
func VisitSessionID(sessionDate, sessionTemplateReference string) string {
	return sessionDate + "_" + sessionTemplateReference
}

// SplitVisitSessionID is the inverse of VisitSessionID. Dates never contain
// an underscore so the first one is the separator.
func SplitVisitSessionID(id string) (sessionDate, sessionTemplateReference string, ok bool) {
	date, ref, found := strings.Cut(id, "_")
	if !found || date == "" || ref == "" {
		return "", "", false
	}
	return date, ref, true
}

// SelectedVisitSession is the session the booker picked on the choose-time step.
type SelectedVisitSession struct {
	SessionDate              string          `json:"sessionDate"`
	SessionTemplateReference string          `json:"sessionTemplateReference"`
	SessionTimeSlot          SessionTimeSlot `json:"sessionTimeSlot"`
}

package journey

import "bookvisit/models"

// Step is a page of the book-a-visit journey. Steps are declared in journey
// order; StepNone is the zero value and is never ready.
type Step int

const (
	StepNone Step = iota
	StepSelectPrisoner
	StepCannotBook
	StepSelectVisitors
	StepClosedVisit
	StepChooseTime
	StepAdditionalSupport
	StepMainContact
	StepContactDetails
	StepCheckDetails
	StepBooked
)

// HomePath is where session-state violations are sent.
const HomePath = "/"

const pathPrefix = "/book-visit"

// Steps lists every journey step in order.
var Steps = []Step{
	StepSelectPrisoner,
	StepCannotBook,
	StepSelectVisitors,
	StepClosedVisit,
	StepChooseTime,
	StepAdditionalSupport,
	StepMainContact,
	StepContactDetails,
	StepCheckDetails,
	StepBooked,
}

// String returns the stage name used in logs.
func (s Step) String() string {
	switch s {
	case StepSelectPrisoner:
		return "SELECT_PRISONER"
	case StepCannotBook:
		return "CANNOT_BOOK"
	case StepSelectVisitors:
		return "SELECT_VISITORS"
	case StepClosedVisit:
		return "CLOSED_VISIT_NOTICE"
	case StepChooseTime:
		return "CHOOSE_TIME"
	case StepAdditionalSupport:
		return "ADDITIONAL_SUPPORT"
	case StepMainContact:
		return "MAIN_CONTACT"
	case StepContactDetails:
		return "CONTACT_DETAILS"
	case StepCheckDetails:
		return "CHECK_DETAILS"
	case StepBooked:
		return "BOOKED"
	case StepNone:
		return "NONE"
	}
	return "UNKNOWN"
}

// Path returns the route of the step.
func (s Step) Path() string {
	switch s {
	case StepSelectPrisoner:
		return pathPrefix + "/select-prisoner"
	case StepCannotBook:
		return pathPrefix + "/cannot-book"
	case StepSelectVisitors:
		return pathPrefix + "/select-visitors"
	case StepClosedVisit:
		return pathPrefix + "/closed-visit"
	case StepChooseTime:
		return pathPrefix + "/choose-visit-time"
	case StepAdditionalSupport:
		return pathPrefix + "/additional-support"
	case StepMainContact:
		return pathPrefix + "/main-contact"
	case StepContactDetails:
		return pathPrefix + "/contact-details"
	case StepCheckDetails:
		return pathPrefix + "/check-visit-details"
	case StepBooked:
		return pathPrefix + "/visit-booked"
	case StepNone:
		return HomePath
	}
	return HomePath
}

// Ready reports whether the session holds everything the step depends on.
func (s Step) Ready(us *models.UserSession) bool {
	if us == nil {
		return false
	}
	j := us.BookingJourney

	switch s {
	case StepSelectPrisoner:
		return us.Booker != nil
	case StepCannotBook:
		return j != nil && j.Prisoner != nil && j.CannotBookReason != ""
	case StepSelectVisitors:
		return prisonerBookable(j)
	case StepClosedVisit:
		return visitorsChosen(j) && j.SessionRestriction == models.SessionRestrictionClosed
	case StepChooseTime:
		return visitorsChosen(j)
	case StepAdditionalSupport:
		return sessionChosen(j)
	case StepMainContact:
		return sessionChosen(j) && j.VisitorSupport != nil
	case StepContactDetails:
		return StepMainContact.Ready(us) && j.MainContact != nil
	case StepCheckDetails:
		return StepContactDetails.Ready(us) && j.ContactDetails != nil
	case StepBooked:
		return us.BookingConfirmed != nil
	case StepNone:
		return false
	}
	return false
}

func prisonerBookable(j *models.BookingJourney) bool {
	return j != nil && j.Prisoner != nil && j.CannotBookReason == ""
}

func visitorsChosen(j *models.BookingJourney) bool {
	return prisonerBookable(j) && j.Prison != nil && len(j.SelectedVisitors) > 0 && j.SessionRestriction != ""
}

func sessionChosen(j *models.BookingJourney) bool {
	return visitorsChosen(j) && j.SelectedVisitSession != nil && j.ApplicationReference != ""
}

var stepsByPath = func() map[string]Step {
	m := make(map[string]Step, len(Steps))
	for _, s := range Steps {
		m[s.Path()] = s
	}
	return m
}()

// StepForPath maps a route to its step.
func StepForPath(path string) (Step, bool) {
	s, ok := stepsByPath[path]
	return s, ok
}

package journey

import (
	"bookvisit/models"
	"bookvisit/services/calendar"
)

// View models handed to the presentation layer, one per step.

type CannotBookView struct {
	Reason   string           `json:"reason"`
	Prisoner *models.Prisoner `json:"prisoner"`
	Prison   *models.Prison   `json:"prison,omitempty"`
}

type SelectVisitorsView struct {
	Prisoner                  *models.Prisoner `json:"prisoner"`
	Prison                    *models.Prison   `json:"prison"`
	EligibleVisitors          []models.Visitor `json:"eligibleVisitors"`
	IneligibleVisitors        []models.Visitor `json:"ineligibleVisitors"`
	SelectedVisitorDisplayIDs []string         `json:"selectedVisitorDisplayIds"`
}

type ClosedVisitView struct {
	Prison *models.Prison `json:"prison"`
}

// ChooseTimeView has NoSessions set, and an empty calendar, when there is
// nothing to book in the prison's window.
type ChooseTimeView struct {
	Prison                 *models.Prison  `json:"prison"`
	NoSessions             bool            `json:"noSessions"`
	Calendar               calendar.Result `json:"calendar"`
	SelectedVisitSessionID string          `json:"selectedVisitSessionId,omitempty"`
}

type AdditionalSupportView struct {
	VisitorSupport *string `json:"visitorSupport,omitempty"`
}

type MainContactView struct {
	AdultVisitors []models.Visitor    `json:"adultVisitors"`
	MainContact   *models.MainContact `json:"mainContact,omitempty"`
}

type ContactDetailsView struct {
	MainContactName string                 `json:"mainContactName"`
	ContactDetails  *models.ContactDetails `json:"contactDetails,omitempty"`
}

type CheckDetailsView struct {
	Prisoner             *models.Prisoner             `json:"prisoner"`
	Prison               *models.Prison               `json:"prison"`
	SelectedVisitors     []models.Visitor             `json:"selectedVisitors"`
	SelectedVisitSession *models.SelectedVisitSession `json:"selectedVisitSession"`
	VisitorSupport       string                       `json:"visitorSupport"`
	MainContactName      string                       `json:"mainContactName"`
	ContactDetails       *models.ContactDetails       `json:"contactDetails"`
}

type BookedView struct {
	models.BookingConfirmed
}

// Form submissions.

// AdditionalSupportForm answers whether visitors need support and, if so, what.
type AdditionalSupportForm struct {
	AdditionalSupportRequired string `form:"additionalSupportRequired"` // "yes" or "no"
	AdditionalSupport         string `form:"additionalSupport"`
}

// MainContactForm picks a selected adult visitor by display ID, or
// ContactSomeoneElse with a free-text name.
type MainContactForm struct {
	Contact         string `form:"contact"`
	SomeoneElseName string `form:"someoneElseName"`
}

// ContactSomeoneElse is the main-contact choice for a person not on the visit.
const ContactSomeoneElse = "someoneElse"

// ContactDetailsForm lists how the main contact wants updates ("email",
// "phone") and the matching details.
type ContactDetailsForm struct {
	GetUpdatesBy []string `form:"getUpdatesBy"`
	Email        string   `form:"email"`
	Phone        string   `form:"phone"`
}

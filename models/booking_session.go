package models

// Reasons a booking journey ends on the cannot-book page.
const (
	CannotBookNoVOBalance            = "NO_VO_BALANCE"
	CannotBookTransferOrRelease      = "TRANSFER_OR_RELEASE"
	CannotBookUnsupportedPrison      = "UNSUPPORTED_PRISON"
	CannotBookNoEligibleAdultVisitor = "NO_ELIGIBLE_ADULT_VISITOR"
)

// MainContact is either one of the selected visitors or a free-text name.
type MainContact struct {
	Contact     *Visitor `json:"contact,omitempty"`
	ContactName string   `json:"contactName,omitempty"`
}

// Name returns the display name of the main contact.
func (m MainContact) Name() string {
	if m.Contact != nil {
		return m.Contact.FullName()
	}
	return m.ContactName
}

// ContactDetails holds the optional ways of contacting the main contact.
type ContactDetails struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BookingJourney is the session aggregate threaded through the book-a-visit
// steps. Fields are listed in the order the steps populate them.
type BookingJourney struct {
	Prisoner         *Prisoner `json:"prisoner,omitempty"`
	CannotBookReason string    `json:"cannotBookReason,omitempty"`

	Prison             *Prison   `json:"prison,omitempty"`
	EligibleVisitors   []Visitor `json:"eligibleVisitors,omitempty"`
	IneligibleVisitors []Visitor `json:"ineligibleVisitors,omitempty"`

	SelectedVisitors   []Visitor `json:"selectedVisitors,omitempty"`
	SessionRestriction string    `json:"sessionRestriction,omitempty"`

	AllVisitSessionIDs   []string                `json:"allVisitSessionIds,omitempty"`
	AllVisitSessions     []AvailableVisitSession `json:"allVisitSessions,omitempty"`
	SelectedVisitSession *SelectedVisitSession   `json:"selectedVisitSession,omitempty"`
	ApplicationReference string                  `json:"applicationReference,omitempty"`

	VisitorSupport *string         `json:"visitorSupport,omitempty"` // "" means no support needed
	MainContact    *MainContact    `json:"mainContact,omitempty"`
	ContactDetails *ContactDetails `json:"contactDetails,omitempty"`
}

// VisitorsLoaded reports whether the prison and visitor list have been cached.
func (j *BookingJourney) VisitorsLoaded() bool {
	return j.Prison != nil && (j.EligibleVisitors != nil || j.IneligibleVisitors != nil)
}

// AllVisitors returns eligible followed by ineligible visitors.
func (j *BookingJourney) AllVisitors() []Visitor {
	all := make([]Visitor, 0, len(j.EligibleVisitors)+len(j.IneligibleVisitors))
	all = append(all, j.EligibleVisitors...)
	return append(all, j.IneligibleVisitors...)
}

// BookingConfirmed is a short-lived summary kept after the journey is deleted.
type BookingConfirmed struct {
	PrisonCode     string `json:"prisonCode"`
	PrisonName     string `json:"prisonName"`
	VisitReference string `json:"visitReference"`
	HasEmail       bool   `json:"hasEmail"`
	HasPhone       bool   `json:"hasPhone"`
}

// FieldError is a machine-readable validation failure on a form field.
type FieldError struct {
	Field string `json:"field"`
	Kind  string `json:"kind"`
}

// Flash carries soft errors, submitted values and notices to the next GET.
type Flash struct {
	Errors     []FieldError        `json:"errors,omitempty"`
	FormValues map[string][]string `json:"formValues,omitempty"`
	Messages   []string            `json:"messages,omitempty"`
}

// UserSession is everything persisted for one authenticated HTTP session.
type UserSession struct {
	Booker           *Booker           `json:"booker,omitempty"`
	BookingJourney   *BookingJourney   `json:"bookingJourney,omitempty"`
	BookingConfirmed *BookingConfirmed `json:"bookingConfirmed,omitempty"`
	Bookings         []Visit           `json:"bookings,omitempty"`
	Flash            *Flash            `json:"flash,omitempty"`
}

// BookerReference returns the booker's reference or "" when not yet registered.
func (s *UserSession) BookerReference() string {
	if s == nil || s.Booker == nil {
		return ""
	}
	return s.Booker.Reference
}

// TakeFlash returns and clears the flash slot.
func (s *UserSession) TakeFlash() *Flash {
	f := s.Flash
	s.Flash = nil
	if f == nil {
		return &Flash{}
	}
	return f
}

package orchestration

// Wire shapes of the orchestration API. They are mapped to bookvisit/models
// types before leaving this package.

type bookerReferenceDto struct {
	Value string `json:"value"`
}

type authDetailDto struct {
	OneLoginSub string `json:"oneLoginSub"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type prisonerDto struct {
	PrisonerNumber  string `json:"prisonerNumber"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PrisonID        string `json:"prisonId"`
	ConvictedStatus string `json:"convictedStatus,omitempty"`
}

type registeredPrisonDto struct {
	PrisonCode string `json:"prisonCode"`
	PrisonName string `json:"prisonName"`
}

type bookerPrisonerInfoDto struct {
	Prisoner            prisonerDto         `json:"prisoner"`
	AvailableVOs        int                 `json:"availableVos"`
	NextAvailableVODate string              `json:"nextAvailableVoDate"`
	RegisteredPrison    registeredPrisonDto `json:"registeredPrison"`
}

type visitorRestrictionDto struct {
	RestrictionType string `json:"restrictionType"`
	ExpiryDate      string `json:"expiryDate,omitempty"`
}

type visitorInfoDto struct {
	VisitorID           int64                   `json:"visitorId"`
	FirstName           string                  `json:"firstName"`
	LastName            string                  `json:"lastName"`
	DateOfBirth         string                  `json:"dateOfBirth"`
	Approved            *bool                   `json:"approved,omitempty"`
	VisitorRestrictions []visitorRestrictionDto `json:"visitorRestrictions"`
}

const restrictionTypeBan = "BAN"

type prisonDto struct {
	Code                string `json:"code"`
	PrisonName          string `json:"prisonName"`
	MaxTotalVisitors    int    `json:"maxTotalVisitors"`
	MaxAdultVisitors    int    `json:"maxAdultVisitors"`
	MaxChildVisitors    int    `json:"maxChildVisitors"`
	AdultAgeYears       int    `json:"adultAgeYears"`
	PolicyNoticeDaysMin int    `json:"policyNoticeDaysMin"`
	PolicyNoticeDaysMax int    `json:"policyNoticeDaysMax"`
	PhoneNumber         string `json:"phoneNumber,omitempty"`
	WebAddress          string `json:"webAddress,omitempty"`
}

type sessionTimeSlotDto struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type availableVisitSessionDto struct {
	SessionDate              string             `json:"sessionDate"`
	SessionTemplateReference string             `json:"sessionTemplateReference"`
	SessionTimeSlot          sessionTimeSlotDto `json:"sessionTimeSlot"`
	SessionRestriction       string             `json:"sessionRestriction,omitempty"`
	NeedsReview              bool               `json:"needsReview,omitempty"`
}

type sessionRestrictionDto struct {
	SessionRestriction string `json:"sessionRestriction"`
}

type visitorDto struct {
	NomisPersonID int64 `json:"nomisPersonId"`
	VisitContact  bool  `json:"visitContact"`
}

type contactDto struct {
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	TelephoneNumber string `json:"telephone,omitempty"`
}

type supportDto struct {
	Description string `json:"description"`
}

type createApplicationDto struct {
	PrisonerID               string       `json:"prisonerId"`
	SessionTemplateReference string       `json:"sessionTemplateReference"`
	SessionDate              string       `json:"sessionDate"`
	ApplicationRestriction   string       `json:"applicationRestriction"`
	Visitors                 []visitorDto `json:"visitors"`
	ActionedBy               string       `json:"actionedBy"`
	UserType                 string       `json:"userType"`
	AllowOverBooking         bool         `json:"allowOverBooking"`
}

type changeApplicationDto struct {
	SessionTemplateReference string       `json:"sessionTemplateReference"`
	SessionDate              string       `json:"sessionDate"`
	ApplicationRestriction   string       `json:"applicationRestriction"`
	VisitContact             *contactDto  `json:"visitContact,omitempty"`
	Visitors                 []visitorDto `json:"visitors"`
	VisitorSupport           *supportDto  `json:"visitorSupport,omitempty"`
	AllowOverBooking         bool         `json:"allowOverBooking"`
}

type applicationDto struct {
	Reference string `json:"reference"`
}

type bookApplicationDto struct {
	ApplicationMethodType string `json:"applicationMethodType"`
	AllowOverBooking      bool   `json:"allowOverBooking"`
	ActionedBy            string `json:"actionedBy"`
	UserType              string `json:"userType"`
}

type cancelVisitDto struct {
	ActionedBy            string `json:"actionedBy"`
	UserType              string `json:"userType"`
	ApplicationMethodType string `json:"applicationMethodType"`
}

type visitDto struct {
	Reference            string              `json:"reference"`
	ApplicationReference string              `json:"applicationReference"`
	PrisonerID           string              `json:"prisonerId"`
	PrisonID             string              `json:"prisonId"`
	PrisonName           string              `json:"prisonName,omitempty"`
	VisitStatus          string              `json:"visitStatus"`
	StartTimestamp       string              `json:"startTimestamp"`
	EndTimestamp         string              `json:"endTimestamp"`
	Visitors             []visitorSummaryDto `json:"visitors,omitempty"`
}

type visitorSummaryDto struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type registerPrisonerDto struct {
	PrisonerID          string `json:"prisonerId"`
	PrisonerFirstName   string `json:"prisonerFirstName"`
	PrisonerLastName    string `json:"prisonerLastName"`
	PrisonerDateOfBirth string `json:"prisonerDateOfBirth"`
	PrisonCode          string `json:"prisonCode"`
}

type addVisitorRequestDto struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
}

type validationErrorResponse struct {
	Status           int      `json:"status"`
	ValidationError  string   `json:"validationError,omitempty"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
}

const (
	userTypePublic           = "PUBLIC"
	applicationMethodWebsite = "WEBSITE"
)

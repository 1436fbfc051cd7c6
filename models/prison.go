package models

// Prison is the booking-policy snapshot for a prison. It is treated as
// immutable for the lifetime of a booking journey.
type Prison struct {
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

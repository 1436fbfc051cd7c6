package models

// Booker is the authenticated person booking visits.
type Booker struct {
	Reference string     `json:"reference"`
	Prisoners []Prisoner `json:"prisoners"`
}

// Prisoner as presented to the booker. PrisonerDisplayID is regenerated on
// every fetch and is only meaningful within the session that holds it.
type Prisoner struct {
	PrisonerDisplayID   string `json:"prisonerDisplayId"`
	PrisonerNumber      string `json:"prisonerNumber"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	PrisonCode          string `json:"prisonCode"`
	PrisonName          string `json:"prisonName"`
	AvailableVOs        int    `json:"availableVos"`
	NextAvailableVODate string `json:"nextAvailableVoDate"`
	ConvictedStatus     string `json:"convictedStatus,omitempty"` // "Convicted" or "Remand"
}

const (
	ConvictedStatusConvicted = "Convicted"
	ConvictedStatusRemand    = "Remand"
)

// CanBookWithoutVOs reports whether a visit can be booked regardless of VO balance.
func (p Prisoner) CanBookWithoutVOs() bool {
	return p.ConvictedStatus == ConvictedStatusRemand
}

// AuthDetails identifies a booker to the orchestration API on first login.
type AuthDetails struct {
	OneLoginSub string `json:"oneLoginSub"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

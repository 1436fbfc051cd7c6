package models

// Visit is a booked visit as listed to the booker.
type Visit struct {
	VisitDisplayID       string          `json:"visitDisplayId"`
	Reference            string          `json:"reference"`
	ApplicationReference string          `json:"applicationReference"`
	PrisonerNumber       string          `json:"prisonerNumber"`
	PrisonCode           string          `json:"prisonCode"`
	PrisonName           string          `json:"prisonName,omitempty"`
	VisitStatus          string          `json:"visitStatus"`
	SessionDate          string          `json:"sessionDate"`
	SessionTimeSlot      SessionTimeSlot `json:"sessionTimeSlot"`
	Visitors             []string        `json:"visitors,omitempty"`
}

// RegisterPrisonerRequest is submitted by a booker linking a new prisoner.
type RegisterPrisonerRequest struct {
	PrisonerNumber string `json:"prisonerId" form:"prisonerNumber" binding:"required,max=7"`
	FirstName      string `json:"prisonerFirstName" form:"firstName" binding:"required,max=35"`
	LastName       string `json:"prisonerLastName" form:"lastName" binding:"required,max=35"`
	DateOfBirth    string `json:"prisonerDateOfBirth" form:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	PrisonCode     string `json:"prisonCode" form:"prisonCode" binding:"required,max=3"`
}

// AddVisitorRequest asks for a new visitor to be linked to a prisoner.
type AddVisitorRequest struct {
	FirstName   string `json:"firstName" form:"firstName" binding:"required,max=35"`
	LastName    string `json:"lastName" form:"lastName" binding:"required,max=35"`
	DateOfBirth string `json:"dateOfBirth" form:"dateOfBirth" binding:"required,datetime=2006-01-02"`
}

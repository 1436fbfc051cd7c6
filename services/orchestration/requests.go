package orchestration

import "bookvisit/models"

// CreateApplicationRequest reserves a visit session as a draft application.
type CreateApplicationRequest struct {
	PrisonerNumber           string
	SessionTemplateReference string
	SessionDate              string
	SessionRestriction       string
	Visitors                 []models.Visitor
	BookerReference          string
}

// ChangeApplicationRequest brings a draft application in line with the
// booking journey. Nil pointers leave the corresponding details unset.
type ChangeApplicationRequest struct {
	SessionTemplateReference string
	SessionDate              string
	SessionRestriction       string
	Visitors                 []models.Visitor
	MainContact              *models.MainContact
	ContactDetails           *models.ContactDetails
	VisitorSupport           *string
}

// VisitSessionsQuery selects the sessions available to a visitor group.
type VisitSessionsQuery struct {
	PrisonCode                   string
	PrisonerNumber               string
	VisitorIDs                   []int64
	ExcludedApplicationReference string
	BookerReference              string
}

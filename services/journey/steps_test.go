package journey

import (
	"testing"

	"bookvisit/models"

	"github.com/stretchr/testify/assert"
)

func TestStepForPath(t *testing.T) {
	for _, s := range Steps {
		got, ok := StepForPath(s.Path())
		assert.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}

	_, ok := StepForPath("/book-visit/unknown")
	assert.False(t, ok)
	_, ok = StepForPath(HomePath)
	assert.False(t, ok)
}

func TestSteps_DistinctPathsAndNames(t *testing.T) {
	paths := map[string]bool{}
	names := map[string]bool{}
	for _, s := range Steps {
		assert.False(t, paths[s.Path()], s.Path())
		assert.False(t, names[s.String()], s.String())
		paths[s.Path()] = true
		names[s.String()] = true
	}
}

func TestStep_ReadyOnEmptySession(t *testing.T) {
	empty := &models.UserSession{}
	for _, s := range Steps {
		assert.False(t, s.Ready(empty), s.String())
	}
	assert.False(t, StepNone.Ready(empty))
	assert.False(t, StepSelectVisitors.Ready(nil))
}

func TestStep_ReadyRequiresEarlierFields(t *testing.T) {
	support := ""
	full := func() *models.UserSession {
		return &models.UserSession{
			Booker: &models.Booker{Reference: "ref"},
			BookingJourney: &models.BookingJourney{
				Prisoner:             &models.Prisoner{PrisonerNumber: "A1234BC"},
				Prison:               &models.Prison{Code: "HEI"},
				SelectedVisitors:     []models.Visitor{{VisitorID: 1}},
				SessionRestriction:   models.SessionRestrictionOpen,
				SelectedVisitSession: &models.SelectedVisitSession{SessionDate: "2024-05-30", SessionTemplateReference: "a"},
				ApplicationReference: "aaa-bbb-ccc",
				VisitorSupport:       &support,
				MainContact:          &models.MainContact{ContactName: "Sam"},
				ContactDetails:       &models.ContactDetails{},
			},
		}
	}

	us := full()
	for _, s := range []Step{StepSelectPrisoner, StepSelectVisitors, StepChooseTime, StepAdditionalSupport, StepMainContact, StepContactDetails, StepCheckDetails} {
		assert.True(t, s.Ready(us), s.String())
	}
	assert.False(t, StepClosedVisit.Ready(us), "open visits skip the closed-visit notice")
	assert.False(t, StepCannotBook.Ready(us))
	assert.False(t, StepBooked.Ready(us))

	tests := []struct {
		name     string
		mutate   func(j *models.BookingJourney)
		lastOK   Step
		firstBad Step
	}{
		{name: "no support answer", mutate: func(j *models.BookingJourney) { j.VisitorSupport = nil }, lastOK: StepAdditionalSupport, firstBad: StepMainContact},
		{name: "no session", mutate: func(j *models.BookingJourney) { j.SelectedVisitSession = nil }, lastOK: StepChooseTime, firstBad: StepAdditionalSupport},
		{name: "no application", mutate: func(j *models.BookingJourney) { j.ApplicationReference = "" }, lastOK: StepChooseTime, firstBad: StepAdditionalSupport},
		{name: "no visitors", mutate: func(j *models.BookingJourney) { j.SelectedVisitors = nil }, lastOK: StepSelectVisitors, firstBad: StepChooseTime},
		{name: "cannot book", mutate: func(j *models.BookingJourney) { j.CannotBookReason = models.CannotBookNoVOBalance }, lastOK: StepCannotBook, firstBad: StepSelectVisitors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := full()
			tt.mutate(us.BookingJourney)
			assert.True(t, tt.lastOK.Ready(us))
			assert.False(t, tt.firstBad.Ready(us))
			assert.False(t, StepCheckDetails.Ready(us))
		})
	}
}

package handlers

import (
	"bookvisit/services/booker"
	"bookvisit/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers with what the routes need to
// guard them.
type HandlerBundle struct {
	JWTSecret     []byte
	SessionStore  session.Store
	BookerService booker.BookerService

	MaxRequestsPerMin int
	MetricsEnabled    bool

	// Booker pages
	Home            gin.HandlerFunc
	AddPrisonerForm gin.HandlerFunc
	AddPrisoner     gin.HandlerFunc
	AddVisitorForm  gin.HandlerFunc
	AddVisitor      gin.HandlerFunc
	Visits          gin.HandlerFunc
	CancelVisit     gin.HandlerFunc
	ReturnHome      gin.HandlerFunc

	// Book-a-visit journey
	SelectPrisoner          gin.HandlerFunc
	CannotBook              gin.HandlerFunc
	SelectVisitors          gin.HandlerFunc
	SubmitVisitors          gin.HandlerFunc
	ClosedVisit             gin.HandlerFunc
	ChooseTime              gin.HandlerFunc
	SubmitVisitTime         gin.HandlerFunc
	AdditionalSupport       gin.HandlerFunc
	SubmitAdditionalSupport gin.HandlerFunc
	MainContact             gin.HandlerFunc
	SubmitMainContact       gin.HandlerFunc
	ContactDetails          gin.HandlerFunc
	SubmitContactDetails    gin.HandlerFunc
	CheckDetails            gin.HandlerFunc
	Book                    gin.HandlerFunc
	Booked                  gin.HandlerFunc
}

// NewHandlerBundle wires the booker and journey handlers into a bundle.
func NewHandlerBundle(bh *BookerHandler, jh *BookingJourneyHandler) *HandlerBundle {
	return &HandlerBundle{
		SessionStore:  bh.Store,
		BookerService: bh.Service,

		Home:            bh.Home,
		AddPrisonerForm: bh.AddPrisonerForm,
		AddPrisoner:     bh.AddPrisoner,
		AddVisitorForm:  bh.AddVisitorForm,
		AddVisitor:      bh.AddVisitor,
		Visits:          bh.Visits,
		CancelVisit:     bh.CancelVisit,
		ReturnHome:      jh.ReturnHome,

		SelectPrisoner:          jh.SelectPrisoner,
		CannotBook:              jh.CannotBook,
		SelectVisitors:          jh.SelectVisitors,
		SubmitVisitors:          jh.SubmitVisitors,
		ClosedVisit:             jh.ClosedVisit,
		ChooseTime:              jh.ChooseTime,
		SubmitVisitTime:         jh.SubmitVisitTime,
		AdditionalSupport:       jh.AdditionalSupport,
		SubmitAdditionalSupport: jh.SubmitAdditionalSupport,
		MainContact:             jh.MainContact,
		SubmitMainContact:       jh.SubmitMainContact,
		ContactDetails:          jh.ContactDetails,
		SubmitContactDetails:    jh.SubmitContactDetails,
		CheckDetails:            jh.CheckDetails,
		Book:                    jh.Book,
		Booked:                  jh.Booked,
	}
}

package handlers

import (
	"errors"

	"bookvisit/middleware"
	"bookvisit/services/journey"
	"bookvisit/services/session"

	"github.com/gin-gonic/gin"
)

// BookingJourneyHandler serves the book-a-visit steps.
type BookingJourneyHandler struct {
	Service journey.BookingJourneyService
	Store   session.Store
}

func NewBookingJourneyHandler(service journey.BookingJourneyService, store session.Store) *BookingJourneyHandler {
	return &BookingJourneyHandler{Service: service, Store: store}
}

// show consumes the flash, saves the session and renders the step's view.
func (h *BookingJourneyHandler) show(c *gin.Context, step journey.Step, view func() (interface{}, error)) {
	us := middleware.UserSession(c)
	flash := us.TakeFlash()
	data, err := view()
	if err != nil {
		handleError(c, err)
		return
	}
	if !save(c, h.Store) {
		return
	}
	render(c, pageName(step), data, flash)
}

// advance applies a step's outcome: back to the step with field errors, on
// to the next step, or to the error boundary.
func (h *BookingJourneyHandler) advance(c *gin.Context, current, next journey.Step, err error) {
	var ve *journey.ValidationError
	if errors.As(err, &ve) {
		redirectWithErrors(c, h.Store, current.Path(), ve.Errors)
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	redirect(c, h.Store, next.Path())
}

func (h *BookingJourneyHandler) SelectPrisoner(c *gin.Context) {
	next, err := h.Service.SelectPrisoner(c.Request.Context(), middleware.UserSession(c), c.PostForm("prisonerDisplayId"))
	if err != nil {
		handleError(c, err)
		return
	}
	redirect(c, h.Store, next.Path())
}

func (h *BookingJourneyHandler) CannotBook(c *gin.Context) {
	h.show(c, journey.StepCannotBook, func() (interface{}, error) {
		return h.Service.CannotBook(middleware.UserSession(c))
	})
}

func (h *BookingJourneyHandler) SelectVisitors(c *gin.Context) {
	us := middleware.UserSession(c)
	flash := us.TakeFlash()
	view, redirectTo, err := h.Service.SelectVisitors(c.Request.Context(), us)
	if err != nil {
		handleError(c, err)
		return
	}
	if redirectTo != journey.StepNone {
		redirect(c, h.Store, redirectTo.Path())
		return
	}
	if !save(c, h.Store) {
		return
	}
	render(c, pageName(journey.StepSelectVisitors), view, flash)
}

func (h *BookingJourneyHandler) SubmitVisitors(c *gin.Context) {
	next, err := h.Service.SubmitVisitors(c.Request.Context(), middleware.UserSession(c), c.PostFormArray("visitorDisplayIds"))
	h.advance(c, journey.StepSelectVisitors, next, err)
}

func (h *BookingJourneyHandler) ClosedVisit(c *gin.Context) {
	h.show(c, journey.StepClosedVisit, func() (interface{}, error) {
		return h.Service.ClosedVisit(middleware.UserSession(c))
	})
}

func (h *BookingJourneyHandler) ChooseTime(c *gin.Context) {
	h.show(c, journey.StepChooseTime, func() (interface{}, error) {
		return h.Service.ChooseTime(c.Request.Context(), middleware.UserSession(c))
	})
}

func (h *BookingJourneyHandler) SubmitVisitTime(c *gin.Context) {
	next, err := h.Service.SubmitVisitTime(c.Request.Context(), middleware.UserSession(c), c.PostForm("visitSession"))
	h.advance(c, journey.StepChooseTime, next, err)
}

func (h *BookingJourneyHandler) AdditionalSupport(c *gin.Context) {
	h.show(c, journey.StepAdditionalSupport, func() (interface{}, error) {
		return h.Service.AdditionalSupport(middleware.UserSession(c))
	})
}

func (h *BookingJourneyHandler) SubmitAdditionalSupport(c *gin.Context) {
	var form journey.AdditionalSupportForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithErrors(c, h.Store, journey.StepAdditionalSupport.Path(), bindingErrors(err))
		return
	}
	next, err := h.Service.SubmitAdditionalSupport(c.Request.Context(), middleware.UserSession(c), form)
	h.advance(c, journey.StepAdditionalSupport, next, err)
}

func (h *BookingJourneyHandler) MainContact(c *gin.Context) {
	h.show(c, journey.StepMainContact, func() (interface{}, error) {
		return h.Service.MainContact(middleware.UserSession(c))
	})
}

func (h *BookingJourneyHandler) SubmitMainContact(c *gin.Context) {
	var form journey.MainContactForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithErrors(c, h.Store, journey.StepMainContact.Path(), bindingErrors(err))
		return
	}
	next, err := h.Service.SubmitMainContact(c.Request.Context(), middleware.UserSession(c), form)
	h.advance(c, journey.StepMainContact, next, err)
}

func (h *BookingJourneyHandler) ContactDetails(c *gin.Context) {
	h.show(c, journey.StepContactDetails, func() (interface{}, error) {
		return h.Service.ContactDetails(middleware.UserSession(c))
	})
}

func (h *BookingJourneyHandler) SubmitContactDetails(c *gin.Context) {
	var form journey.ContactDetailsForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithErrors(c, h.Store, journey.StepContactDetails.Path(), bindingErrors(err))
		return
	}
	next, err := h.Service.SubmitContactDetails(c.Request.Context(), middleware.UserSession(c), form)
	h.advance(c, journey.StepContactDetails, next, err)
}

func (h *BookingJourneyHandler) CheckDetails(c *gin.Context) {
	h.show(c, journey.StepCheckDetails, func() (interface{}, error) {
		return h.Service.CheckDetails(middleware.UserSession(c))
	})
}

func (h *BookingJourneyHandler) Book(c *gin.Context) {
	next, err := h.Service.Book(c.Request.Context(), middleware.UserSession(c))
	if err != nil {
		handleError(c, err)
		return
	}
	redirect(c, h.Store, next.Path())
}

func (h *BookingJourneyHandler) Booked(c *gin.Context) {
	h.show(c, journey.StepBooked, func() (interface{}, error) {
		return h.Service.Booked(middleware.UserSession(c))
	})
}

func (h *BookingJourneyHandler) ReturnHome(c *gin.Context) {
	h.Service.ReturnHome(middleware.UserSession(c))
	redirect(c, h.Store, journey.HomePath)
}

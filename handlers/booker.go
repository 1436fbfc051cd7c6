package handlers

import (
	"errors"

	"bookvisit/middleware"
	"bookvisit/models"
	"bookvisit/services/booker"
	"bookvisit/services/journey"
	"bookvisit/services/session"

	"github.com/gin-gonic/gin"
)

const (
	addPrisonerPath = "/add-prisoner"
	addVisitorPath  = "/visitors/add"
	visitsPath      = "/visits"
)

// Notices flashed after a booker action succeeds.
const (
	MessagePrisonerRegistered      = "PrisonerRegistered"
	MessageVisitorRequestSubmitted = "VisitorRequestSubmitted"
	MessageVisitCancelled          = "VisitCancelled"
)

// HomeView lists the booker's prisoners.
type HomeView struct {
	Prisoners []models.Prisoner `json:"prisoners"`
}

// VisitsView lists the booker's future visits.
type VisitsView struct {
	Visits []models.Visit `json:"visits"`
}

// BookerHandler serves the booker's pages outside the booking journey.
type BookerHandler struct {
	Service booker.BookerService
	Store   session.Store
}

func NewBookerHandler(service booker.BookerService, store session.Store) *BookerHandler {
	return &BookerHandler{Service: service, Store: store}
}

func (h *BookerHandler) Home(c *gin.Context) {
	us := middleware.UserSession(c)
	flash := us.TakeFlash()
	prisoners, err := h.Service.LoadPrisoners(c.Request.Context(), us)
	if err != nil {
		handleError(c, err)
		return
	}
	if !save(c, h.Store) {
		return
	}
	render(c, "home", HomeView{Prisoners: prisoners}, flash)
}

func (h *BookerHandler) AddPrisonerForm(c *gin.Context) {
	us := middleware.UserSession(c)
	flash := us.TakeFlash()
	if !save(c, h.Store) {
		return
	}
	render(c, "add-prisoner", nil, flash)
}

func (h *BookerHandler) AddPrisoner(c *gin.Context) {
	var req models.RegisterPrisonerRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithErrors(c, h.Store, addPrisonerPath, bindingErrors(err))
		return
	}

	us := middleware.UserSession(c)
	err := h.Service.RegisterPrisoner(c.Request.Context(), us, req)
	switch {
	case errors.Is(err, booker.ErrPrisonerNotMatched):
		redirectWithErrors(c, h.Store, addPrisonerPath, []models.FieldError{{Field: "prisonerNumber", Kind: "NotMatched"}})
	case err != nil:
		handleError(c, err)
	default:
		us.Flash = &models.Flash{Messages: []string{MessagePrisonerRegistered}}
		redirect(c, h.Store, journey.HomePath)
	}
}

func (h *BookerHandler) AddVisitorForm(c *gin.Context) {
	us := middleware.UserSession(c)
	flash := us.TakeFlash()
	if !save(c, h.Store) {
		return
	}
	var prisoners []models.Prisoner
	if us.Booker != nil {
		prisoners = us.Booker.Prisoners
	}
	render(c, "add-visitor", HomeView{Prisoners: prisoners}, flash)
}

func (h *BookerHandler) AddVisitor(c *gin.Context) {
	var req models.AddVisitorRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithErrors(c, h.Store, addVisitorPath, bindingErrors(err))
		return
	}

	us := middleware.UserSession(c)
	if err := h.Service.AddVisitorRequest(c.Request.Context(), us, c.PostForm("prisonerDisplayId"), req); err != nil {
		handleError(c, err)
		return
	}
	us.Flash = &models.Flash{Messages: []string{MessageVisitorRequestSubmitted}}
	redirect(c, h.Store, journey.HomePath)
}

func (h *BookerHandler) Visits(c *gin.Context) {
	us := middleware.UserSession(c)
	flash := us.TakeFlash()
	visits, err := h.Service.FutureVisits(c.Request.Context(), us)
	if err != nil {
		handleError(c, err)
		return
	}
	if !save(c, h.Store) {
		return
	}
	render(c, "visits", VisitsView{Visits: visits}, flash)
}

func (h *BookerHandler) CancelVisit(c *gin.Context) {
	us := middleware.UserSession(c)
	if err := h.Service.CancelVisit(c.Request.Context(), us, c.PostForm("visitDisplayId")); err != nil {
		handleError(c, err)
		return
	}
	us.Flash = &models.Flash{Messages: []string{MessageVisitCancelled}}
	redirect(c, h.Store, visitsPath)
}

package journey

import (
	"context"
	"time"

	"bookvisit/models"
	"bookvisit/services/orchestration"

	"go.uber.org/zap"
)

// Orchestration is the part of the orchestration API the journey uses.
type Orchestration interface {
	ValidatePrisoner(ctx context.Context, bookerReference, prisonerNumber string) error
	GetPrison(ctx context.Context, prisonCode string) (*models.Prison, error)
	GetVisitors(ctx context.Context, bookerReference, prisonerNumber string) ([]models.Visitor, error)
	GetSessionRestriction(ctx context.Context, prisonerNumber string, visitorIDs []int64) (string, error)
	GetVisitSessions(ctx context.Context, q orchestration.VisitSessionsQuery) ([]models.AvailableVisitSession, error)
	CreateVisitApplication(ctx context.Context, req orchestration.CreateApplicationRequest) (string, error)
	ChangeVisitApplication(ctx context.Context, applicationReference string, req orchestration.ChangeApplicationRequest) error
	BookVisit(ctx context.Context, applicationReference, actionedBy string) (string, error)
}

// BookingJourneyService runs the book-a-visit steps against a user session.
// GET operations return a view and, when the step cannot be shown, the step
// to redirect to instead. POST operations return the next step. Every
// operation mutates the session in place; the caller persists it.
type BookingJourneyService interface {
	SelectPrisoner(ctx context.Context, us *models.UserSession, prisonerDisplayID string) (Step, error)
	CannotBook(us *models.UserSession) (*CannotBookView, error)

	SelectVisitors(ctx context.Context, us *models.UserSession) (*SelectVisitorsView, Step, error)
	SubmitVisitors(ctx context.Context, us *models.UserSession, visitorDisplayIDs []string) (Step, error)
	ClosedVisit(us *models.UserSession) (*ClosedVisitView, error)

	ChooseTime(ctx context.Context, us *models.UserSession) (*ChooseTimeView, error)
	SubmitVisitTime(ctx context.Context, us *models.UserSession, visitSessionID string) (Step, error)

	AdditionalSupport(us *models.UserSession) (*AdditionalSupportView, error)
	SubmitAdditionalSupport(ctx context.Context, us *models.UserSession, form AdditionalSupportForm) (Step, error)

	MainContact(us *models.UserSession) (*MainContactView, error)
	SubmitMainContact(ctx context.Context, us *models.UserSession, form MainContactForm) (Step, error)

	ContactDetails(us *models.UserSession) (*ContactDetailsView, error)
	SubmitContactDetails(ctx context.Context, us *models.UserSession, form ContactDetailsForm) (Step, error)

	CheckDetails(us *models.UserSession) (*CheckDetailsView, error)
	Book(ctx context.Context, us *models.UserSession) (Step, error)

	Booked(us *models.UserSession) (*BookedView, error)
	ReturnHome(us *models.UserSession)
}

// DefaultBookingJourneyService is the production implementation.
type DefaultBookingJourneyService struct {
	Orchestration Orchestration
	Logger        *zap.Logger
	// Now is the clock all date arithmetic runs against. Nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingJourneyService) today() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingJourneyService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

package booker

import (
	"context"

	"bookvisit/models"
	"bookvisit/services/ratelimit"

	"go.uber.org/zap"
)

// Orchestration is the part of the orchestration API the booker pages use.
type Orchestration interface {
	RegisterBooker(ctx context.Context, auth models.AuthDetails) (string, error)
	GetPrisoners(ctx context.Context, bookerReference string) ([]models.Prisoner, error)
	RegisterPrisoner(ctx context.Context, bookerReference string, req models.RegisterPrisonerRequest) (bool, error)
	AddVisitorRequest(ctx context.Context, bookerReference, prisonerNumber string, req models.AddVisitorRequest) error
	GetFuturePublicVisits(ctx context.Context, bookerReference string) ([]models.Visit, error)
	CancelVisit(ctx context.Context, applicationReference, actionedBy string) error
}

type BookerService interface {
	// Bootstrap registers the booker on first sight and keeps the reference in the session.
	Bootstrap(ctx context.Context, us *models.UserSession, auth models.AuthDetails) error
	// LoadPrisoners refreshes the booker's prisoners, issuing new display IDs.
	LoadPrisoners(ctx context.Context, us *models.UserSession) ([]models.Prisoner, error)
	RegisterPrisoner(ctx context.Context, us *models.UserSession, req models.RegisterPrisonerRequest) error
	AddVisitorRequest(ctx context.Context, us *models.UserSession, prisonerDisplayID string, req models.AddVisitorRequest) error
	// FutureVisits refreshes the booker's upcoming visits, issuing new display IDs.
	FutureVisits(ctx context.Context, us *models.UserSession) ([]models.Visit, error)
	CancelVisit(ctx context.Context, us *models.UserSession, visitDisplayID string) error
}

// DefaultBookerService is the production implementation.
type DefaultBookerService struct {
	Orchestration Orchestration

	// BookerLimiter and PrisonerLimiter must both allow a prisoner registration.
	BookerLimiter   ratelimit.RateLimiter
	PrisonerLimiter ratelimit.RateLimiter
	// VisitorRequestLimiter guards add-visitor requests per booker.
	VisitorRequestLimiter ratelimit.RateLimiter

	Logger *zap.Logger
}

func (s *DefaultBookerService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

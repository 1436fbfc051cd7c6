package booker

import (
	"context"
	"fmt"

	"bookvisit/models"
	"bookvisit/services/ratelimit"
	"bookvisit/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookerService) Bootstrap(ctx context.Context, us *models.UserSession, auth models.AuthDetails) error {
	if us.Booker != nil && us.Booker.Reference != "" {
		return nil
	}
	ref, err := s.Orchestration.RegisterBooker(ctx, auth)
	if err != nil {
		return fmt.Errorf("failed to register booker: %w", err)
	}
	us.Booker = &models.Booker{Reference: ref, Prisoners: []models.Prisoner{}}
	s.logger().Info("Booker registered", zap.String("bookerReference", ref))
	return nil
}

func (s *DefaultBookerService) LoadPrisoners(ctx context.Context, us *models.UserSession) ([]models.Prisoner, error) {
	if us.Booker == nil {
		return nil, ErrNotRegistered
	}
	prisoners, err := s.Orchestration.GetPrisoners(ctx, us.Booker.Reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get prisoners: %w", err)
	}
	us.Booker.Prisoners = prisoners
	return prisoners, nil
}

// RegisterPrisoner links a prisoner to the booker. Both the booker and the
// prisoner limiter count every attempt, and the upstream call is only made
// when both allow it.
func (s *DefaultBookerService) RegisterPrisoner(ctx context.Context, us *models.UserSession, req models.RegisterPrisonerRequest) error {
	if us.Booker == nil {
		return ErrNotRegistered
	}
	bookerRef := us.Booker.Reference

	bookerOK, err := s.BookerLimiter.IncrementAndCheckLimit(ctx, bookerRef)
	if err != nil {
		return err
	}
	prisonerOK, err := s.PrisonerLimiter.IncrementAndCheckLimit(ctx, req.PrisonerNumber)
	if err != nil {
		return err
	}
	if !bookerOK || !prisonerOK {
		var exceeded []string
		if !bookerOK {
			exceeded = append(exceeded, "booker")
		}
		if !prisonerOK {
			exceeded = append(exceeded, "prisoner")
		}
		s.logger().Warn("Register prisoner rate limit exceeded",
			zap.String("bookerReference", bookerRef),
			zap.String("prisonerNumber", req.PrisonerNumber),
			zap.Strings("exceeded", exceeded))
		for _, name := range exceeded {
			utils.RateLimitRejectionsTotal.WithLabelValues(name).Inc()
		}
		return ratelimit.ErrRateLimitExceeded
	}

	ok, err := s.Orchestration.RegisterPrisoner(ctx, bookerRef, req)
	if err != nil {
		return fmt.Errorf("failed to register prisoner: %w", err)
	}
	if !ok {
		return ErrPrisonerNotMatched
	}
	s.logger().Info("Prisoner registered", zap.String("bookerReference", bookerRef))
	return nil
}

func (s *DefaultBookerService) AddVisitorRequest(ctx context.Context, us *models.UserSession, prisonerDisplayID string, req models.AddVisitorRequest) error {
	if us.Booker == nil {
		return ErrNotRegistered
	}
	prisoner, ok := findPrisoner(us.Booker.Prisoners, prisonerDisplayID)
	if !ok {
		return ErrNotFound
	}

	allowed, err := s.VisitorRequestLimiter.IncrementAndCheckLimit(ctx, us.Booker.Reference)
	if err != nil {
		return err
	}
	if !allowed {
		s.logger().Warn("Visitor request rate limit exceeded", zap.String("bookerReference", us.Booker.Reference))
		utils.RateLimitRejectionsTotal.WithLabelValues("visitor_request").Inc()
		return ratelimit.ErrRateLimitExceeded
	}

	if err := s.Orchestration.AddVisitorRequest(ctx, us.Booker.Reference, prisoner.PrisonerNumber, req); err != nil {
		return fmt.Errorf("failed to add visitor request: %w", err)
	}
	return nil
}

func findPrisoner(prisoners []models.Prisoner, displayID string) (models.Prisoner, bool) {
	for _, p := range prisoners {
		if p.PrisonerDisplayID == displayID {
			return p, true
		}
	}
	return models.Prisoner{}, false
}

func (s *DefaultBookerService) FutureVisits(ctx context.Context, us *models.UserSession) ([]models.Visit, error) {
	if us.Booker == nil {
		return nil, ErrNotRegistered
	}
	visits, err := s.Orchestration.GetFuturePublicVisits(ctx, us.Booker.Reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get future visits: %w", err)
	}
	us.Bookings = visits
	return visits, nil
}

// CancelVisit cancels one of the visits last listed by FutureVisits.
func (s *DefaultBookerService) CancelVisit(ctx context.Context, us *models.UserSession, visitDisplayID string) error {
	if us.Booker == nil {
		return ErrNotRegistered
	}
	idx := -1
	for i, v := range us.Bookings {
		if v.VisitDisplayID == visitDisplayID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	visit := us.Bookings[idx]

	if err := s.Orchestration.CancelVisit(ctx, visit.ApplicationReference, us.Booker.Reference); err != nil {
		return fmt.Errorf("failed to cancel visit %s: %w", visit.Reference, err)
	}
	us.Bookings = append(us.Bookings[:idx:idx], us.Bookings[idx+1:]...)
	s.logger().Info("Visit cancelled",
		zap.String("bookerReference", us.Booker.Reference),
		zap.String("visitReference", visit.Reference))
	return nil
}

package session

import (
	"context"

	"bookvisit/models"
)

// Store persists one UserSession per authenticated HTTP session.
type Store interface {
	// Get returns the stored session, or an empty one when none exists.
	Get(ctx context.Context, sessionID string) (*models.UserSession, error)
	// Set stores the session and refreshes its expiry.
	Set(ctx context.Context, sessionID string, s *models.UserSession) error
	// Clear removes the session.
	Clear(ctx context.Context, sessionID string) error
}

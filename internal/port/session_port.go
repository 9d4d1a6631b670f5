package port

import (
	"context"

	"github.com/google/uuid"
)

// CartSessionRepository remembers which remote cart belongs to a shopper session.
type CartSessionRepository interface {
	// GetCartID returns "" when the session has no cart.
	GetCartID(ctx context.Context, sessionID uuid.UUID) (string, error)
	SaveCartID(ctx context.Context, sessionID uuid.UUID, cartID string) error
	DeleteSession(ctx context.Context, sessionID uuid.UUID) (bool, error)
}

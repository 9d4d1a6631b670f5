package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/port"
)

type cartSessionRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewCartSession stores session to cart mappings in postgres. Sessions not
// written for longer than ttl are treated as absent; ttl <= 0 keeps them forever.
func NewCartSession(pool *pgxpool.Pool, ttl time.Duration) (port.CartSessionRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartSessionRepository{
		q:    db.New(pool),
		pool: pool,
		ttl:  ttl,
	}, nil
}

func NewCartSessionWithTx(tx pgx.Tx, ttl time.Duration) port.CartSessionRepository {
	return &cartSessionRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
		ttl:  ttl,
	}
}

func (r *cartSessionRepository) GetCartID(ctx context.Context, sessionID uuid.UUID) (string, error) {
	if sessionID == uuid.Nil {
		return "", fmt.Errorf("sessionID is empty")
	}

	cartID, err := r.q.GetCartID(ctx, db.GetCartIDParams{
		SessionID: sessionID,
		UpdatedAt: r.cutoff(),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("q.GetCartID: %w", err)
	}

	return cartID, nil
}

// SaveCartID upserts the mapping and prunes expired sessions in the same transaction.
func (r *cartSessionRepository) SaveCartID(ctx context.Context, sessionID uuid.UUID, cartID string) error {
	if sessionID == uuid.Nil {
		return fmt.Errorf("sessionID is empty")
	}
	if cartID == "" {
		return fmt.Errorf("cartID is empty")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (int64, error) {
		err := q.UpsertCartSession(ctx, db.UpsertCartSessionParams{
			SessionID: sessionID,
			CartID:    cartID,
		})
		if err != nil {
			return 0, fmt.Errorf("q.UpsertCartSession: %w", err)
		}

		if r.ttl <= 0 {
			return 0, nil
		}

		pruned, err := q.DeleteExpiredCartSessions(ctx, r.cutoff())
		if err != nil {
			return 0, fmt.Errorf("q.DeleteExpiredCartSessions: %w", err)
		}
		return pruned, nil
	})

	return err
}

func (r *cartSessionRepository) DeleteSession(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	if sessionID == uuid.Nil {
		return false, fmt.Errorf("sessionID is empty")
	}

	rowsAffected, err := r.q.DeleteCartSession(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartSession: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartSessionRepository) cutoff() time.Time {
	if r.ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(-r.ttl)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

const redisSessionKeyPrefix = "storefront:cart_session:"

type redisCartSessionRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCartSession stores session to cart mappings as redis keys expiring
// after ttl; ttl <= 0 keeps them forever.
func NewRedisCartSession(client redis.UniversalClient, ttl time.Duration) (port.CartSessionRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}

	return &redisCartSessionRepository{
		client: client,
		ttl:    max(ttl, 0),
	}, nil
}

func (r *redisCartSessionRepository) GetCartID(ctx context.Context, sessionID uuid.UUID) (string, error) {
	if sessionID == uuid.Nil {
		return "", fmt.Errorf("sessionID is empty")
	}

	cartID, err := r.client.Get(ctx, redisSessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("client.Get: %w", err)
	}

	return cartID, nil
}

func (r *redisCartSessionRepository) SaveCartID(ctx context.Context, sessionID uuid.UUID, cartID string) error {
	if sessionID == uuid.Nil {
		return fmt.Errorf("sessionID is empty")
	}
	if cartID == "" {
		return fmt.Errorf("cartID is empty")
	}

	if err := r.client.Set(ctx, redisSessionKey(sessionID), cartID, r.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (r *redisCartSessionRepository) DeleteSession(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	if sessionID == uuid.Nil {
		return false, fmt.Errorf("sessionID is empty")
	}

	deleted, err := r.client.Del(ctx, redisSessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("client.Del: %w", err)
	}

	return deleted > 0, nil
}

func redisSessionKey(sessionID uuid.UUID) string {
	return redisSessionKeyPrefix + sessionID.String()
}

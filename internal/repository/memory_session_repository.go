package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/port"
)

type memoryEntry struct {
	cartID    string
	expiresAt time.Time
}

type memoryCartSessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]memoryEntry
	ttl      time.Duration
}

// NewMemoryCartSession keeps session to cart mappings in process memory.
// Entries expire ttl after their last write; ttl <= 0 keeps them forever.
func NewMemoryCartSession(ttl time.Duration) port.CartSessionRepository {
	return &memoryCartSessionRepository{
		sessions: make(map[uuid.UUID]memoryEntry),
		ttl:      ttl,
	}
}

func (r *memoryCartSessionRepository) GetCartID(ctx context.Context, sessionID uuid.UUID) (string, error) {
	if sessionID == uuid.Nil {
		return "", fmt.Errorf("sessionID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		return "", nil
	}
	if !entry.expiresAt.IsZero() && !time.Now().Before(entry.expiresAt) {
		delete(r.sessions, sessionID)
		return "", nil
	}

	return entry.cartID, nil
}

func (r *memoryCartSessionRepository) SaveCartID(ctx context.Context, sessionID uuid.UUID, cartID string) error {
	if sessionID == uuid.Nil {
		return fmt.Errorf("sessionID is empty")
	}
	if cartID == "" {
		return fmt.Errorf("cartID is empty")
	}

	entry := memoryEntry{cartID: cartID}
	if r.ttl > 0 {
		entry.expiresAt = time.Now().Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = entry

	return nil
}

func (r *memoryCartSessionRepository) DeleteSession(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	if sessionID == uuid.Nil {
		return false, fmt.Errorf("sessionID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)

	return ok, nil
}

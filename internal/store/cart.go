// Package store holds the process-wide UI state shared by the header badge,
// the cart drawer and the cart page. Values are replaced whole, never mutated
// in place, so readers always see one consistent state.
package store

import (
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
)

// CartState is the local read-through cache of the remote cart.
type CartState struct {
	ID            string
	TotalQuantity int
	// Snapshot is the last full cart fetched, nil until one is fetched.
	Snapshot *domain.Cart
}

func (s CartState) clone() CartState {
	if s.Snapshot != nil {
		snap := s.Snapshot.Clone()
		s.Snapshot = &snap
	}
	return s
}

type Cart struct {
	mu    sync.RWMutex
	state CartState
}

func NewCart() *Cart {
	return &Cart{}
}

// NewCartWithID seeds the cache with a persisted cart id.
func NewCartWithID(id string) *Cart {
	c := NewCart()
	c.state.ID = id
	return c
}

func (c *Cart) State() CartState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

func (c *Cart) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.ID
}

func (c *Cart) TotalQuantity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.TotalQuantity
}

// SetCart adopts a write result. The snapshot is dropped since it no longer
// reflects the remote cart.
func (c *Cart) SetCart(id string, totalQuantity int) {
	c.replace(CartState{ID: id, TotalQuantity: totalQuantity})
}

// SetSnapshot adopts a full cart as the new local truth.
func (c *Cart) SetSnapshot(cart domain.Cart) {
	snap := cart.Clone()
	c.replace(CartState{ID: cart.ID, TotalQuantity: cart.TotalQuantity, Snapshot: &snap})
}

func (c *Cart) Clear() {
	c.replace(CartState{})
}

func (c *Cart) replace(next CartState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = next
}

// Package cartsync keeps the local cart cache consistent with the remote cart.
//
// Every successful mutation is followed by adopting state returned or refetched
// from the remote platform; quantities and costs are never computed locally.
// A failed call leaves local state untouched and is not retried. Concurrent
// calls are not coalesced: whichever completes last wins.
package cartsync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/store"
	"go.uber.org/zap"
)

const DefaultQuantity = 1

var errEmptyRemoteID = errors.New("remote returned an empty cart id")

type Synchronizer struct {
	api    port.CartAPI
	cart   *store.Cart
	ui     *store.UI
	logger *zap.Logger

	inflight atomic.Int64
}

type Option func(*Synchronizer)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

func New(api port.CartAPI, cart *store.Cart, ui *store.UI, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		api:    api,
		cart:   cart,
		ui:     ui,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Busy reports whether any remote call is in flight, so triggering controls can be disabled.
func (s *Synchronizer) Busy() bool {
	return s.inflight.Load() > 0
}

// Add puts one unit of merchandiseID in the cart.
func (s *Synchronizer) Add(ctx context.Context, merchandiseID string) (domain.CartSummary, error) {
	return s.AddOrCreate(ctx, merchandiseID, DefaultQuantity)
}

// AddOrCreate creates a cart holding the line when none is cached, otherwise
// adds the line to the cached cart. On success the returned id and total
// quantity become the local state and the cart drawer opens.
func (s *Synchronizer) AddOrCreate(ctx context.Context, merchandiseID string, quantity int) (domain.CartSummary, error) {
	lines := []domain.LineInput{{MerchandiseID: merchandiseID, Quantity: quantity}}
	if err := domain.ValidateLines(lines); err != nil {
		return domain.CartSummary{}, err
	}

	defer s.track()()

	cartID := s.cart.ID()

	var (
		op      string
		summary domain.CartSummary
		err     error
	)
	if cartID == "" {
		op = "api.CreateCart"
		summary, err = s.api.CreateCart(ctx, lines)
	} else {
		op = "api.AddLines"
		summary, err = s.api.AddLines(ctx, cartID, lines)
	}
	if err != nil {
		return domain.CartSummary{}, s.failed(op, cartID, err)
	}
	if summary.ID == "" {
		return domain.CartSummary{}, s.failed(op, cartID, errEmptyRemoteID)
	}

	s.cart.SetCart(summary.ID, summary.TotalQuantity)
	s.ui.OpenCart()

	s.logger.Debug("cart adopted",
		zap.String("cart_id", summary.ID),
		zap.Int("total_quantity", summary.TotalQuantity))

	return summary, nil
}

// UpdateLine sets a line's quantity and then adopts the refetched cart.
func (s *Synchronizer) UpdateLine(ctx context.Context, cartID, lineID string, quantity int) (domain.Cart, error) {
	if cartID == "" {
		return domain.Cart{}, domain.ErrEmptyCartID
	}
	lines := []domain.LineUpdate{{ID: lineID, Quantity: quantity}}
	if err := domain.ValidateLineUpdates(lines); err != nil {
		return domain.Cart{}, err
	}

	defer s.track()()

	if _, err := s.api.UpdateLines(ctx, cartID, lines); err != nil {
		return domain.Cart{}, s.failed("api.UpdateLines", cartID, err)
	}

	return s.refresh(ctx, cartID)
}

// Increment adds one to the line's quantity.
func (s *Synchronizer) Increment(ctx context.Context, cartID string, line domain.CartLine) (domain.Cart, error) {
	return s.UpdateLine(ctx, cartID, line.ID, line.Quantity+1)
}

// Decrement removes one from the line's quantity, never going below 1.
// Removing a line is RemoveLines.
func (s *Synchronizer) Decrement(ctx context.Context, cartID string, line domain.CartLine) (domain.Cart, error) {
	return s.UpdateLine(ctx, cartID, line.ID, max(1, line.Quantity-1))
}

// RemoveLines removes the lines in one remote call and then adopts the refetched cart.
func (s *Synchronizer) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (domain.Cart, error) {
	if cartID == "" {
		return domain.Cart{}, domain.ErrEmptyCartID
	}
	if len(lineIDs) == 0 {
		return domain.Cart{}, domain.ErrNoLines
	}
	for _, id := range lineIDs {
		if id == "" {
			return domain.Cart{}, domain.ErrEmptyLineID
		}
	}

	defer s.track()()

	if _, err := s.api.RemoveLines(ctx, cartID, lineIDs); err != nil {
		return domain.Cart{}, s.failed("api.RemoveLines", cartID, err)
	}

	return s.refresh(ctx, cartID)
}

// FetchSnapshot reads the full cart and adopts it.
func (s *Synchronizer) FetchSnapshot(ctx context.Context, cartID string) (domain.Cart, error) {
	if cartID == "" {
		return domain.Cart{}, domain.ErrEmptyCartID
	}

	defer s.track()()

	return s.refresh(ctx, cartID)
}

// Hydrate fetches the cached cart, if any. It is what a drawer or cart page
// does when it opens.
func (s *Synchronizer) Hydrate(ctx context.Context) (store.CartState, error) {
	cartID := s.cart.ID()
	if cartID == "" {
		return s.cart.State(), nil
	}

	if _, err := s.FetchSnapshot(ctx, cartID); err != nil {
		return store.CartState{}, err
	}
	return s.cart.State(), nil
}

func (s *Synchronizer) refresh(ctx context.Context, cartID string) (domain.Cart, error) {
	cart, err := s.api.GetCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, s.failed("api.GetCart", cartID, err)
	}

	s.cart.SetSnapshot(cart)
	return cart, nil
}

func (s *Synchronizer) failed(op, cartID string, err error) error {
	s.logger.Warn("cart sync failed, local state kept",
		zap.String("op", op),
		zap.String("cart_id", cartID),
		zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Synchronizer) track() func() {
	s.inflight.Add(1)
	return func() {
		s.inflight.Add(-1)
	}
}

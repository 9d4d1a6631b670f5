package store

import "sync/atomic"

// UI holds the cart drawer visibility. It is not persisted.
type UI struct {
	cartOpen atomic.Bool
}

func NewUI() *UI {
	return &UI{}
}

func (u *UI) IsCartOpen() bool {
	return u.cartOpen.Load()
}

func (u *UI) OpenCart() {
	u.cartOpen.Store(true)
}

func (u *UI) CloseCart() {
	u.cartOpen.Store(false)
}

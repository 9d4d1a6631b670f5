package domain

import "errors"

var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrEmptyCartID        = errors.New("cartID is empty")
	ErrEmptyLineID        = errors.New("lineID is empty")
	ErrEmptyMerchandiseID = errors.New("merchandiseID is empty")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrNoLines            = errors.New("no lines given")
)

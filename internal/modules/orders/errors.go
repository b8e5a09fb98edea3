package orders

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrLinesNotFound     = errors.New("order lines not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrBadRequest        = errors.New("invalid order request")
)

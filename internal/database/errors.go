package database

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSlotUnavailable is returned when a booking would overlap an
	// active booking on the same field and date.
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrProductUnavailable covers inactive products, unknown sizes and
	// insufficient stock.
	ErrProductUnavailable = errors.New("product unavailable")
	// ErrOrderDelivered is returned when cancelling an already
	// delivered order.
	ErrOrderDelivered = errors.New("order already delivered")
)

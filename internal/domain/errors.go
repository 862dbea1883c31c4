package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuantity indicates a requested quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrStockLimit indicates an increment blocked at the known stock ceiling.
	ErrStockLimit = errors.New("stock limit reached")

	// ErrEmptyCart indicates checkout was attempted with no lines in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidTransition indicates a funding request status change outside
	// the allowed transition table.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InsufficientStockError reports that a requested quantity exceeds the
// authoritative stock, along with the largest quantity that could still be
// accepted for the product.
type InsufficientStockError struct {
	ProductID  int64
	Available  int
	MaxAddable int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: %d available, at most %d more can be added", e.ProductID, e.Available, e.MaxAddable)
}

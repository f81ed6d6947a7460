// Package errors defines the sentinel errors of the cart domain.
package errors

import "errors"

var (
	// ErrItemNotFound is returned when a cart line for the product does not exist.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrProductUnavailable is returned when the product cannot be added
	// because it is not active or is out of stock.
	ErrProductUnavailable = errors.New("product unavailable")
)

// Package store defines the persistence contract for shopping carts.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/cart"
)

// CartStore defines the methods for cart persistence. Lines keep their
// insertion order within a user's cart.
type CartStore interface {
	// Get returns the user's cart lines. An unknown user has an empty cart.
	Get(ctx context.Context, userID string) ([]cart.Line, error)
	// Put inserts or replaces the line for the product it references.
	// A new line is appended after the existing ones.
	Put(ctx context.Context, userID string, line cart.Line) error
	// Remove deletes the line for the given product.
	// Returns ErrItemNotFound if no such line exists.
	Remove(ctx context.Context, userID string, productID uuid.UUID) error
	// Clear drops every line from the user's cart.
	Clear(ctx context.Context, userID string) error
	// Find returns the line for the given product.
	// Returns ErrItemNotFound if no such line exists.
	Find(ctx context.Context, userID string, productID uuid.UUID) (*cart.Line, error)
}

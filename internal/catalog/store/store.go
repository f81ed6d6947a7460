// Package store provides an interface for catalog storage operations.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/catalog"
)

// UpdateParams carries a partial product update. Nil fields are left
// unchanged; the store refreshes UpdatedAt on every successful update.
type UpdateParams struct {
	Slug           *string
	Name           *string
	Description    *string
	Price          *int64
	OriginalPrice  *int64
	Category       *string
	Subcategory    *string
	Images         []string
	Stock          *int32
	Status         *catalog.Status
	SKU            *string
	Tags           []string
	Specifications map[string]string
}

// BulkResult reports the outcome of a best-effort bulk mutation: which ids
// were applied, which were not found, and which were left untouched because
// the lifecycle state machine forbids the requested transition.
type BulkResult struct {
	Applied []uuid.UUID
	Missing []uuid.UUID
	Skipped []uuid.UUID
}

// ProductStore is an interface for catalog storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)

	// FindBySlug retrieves a single product by its human-readable slug.
	// Returns ErrProductNotFound if no product exists with the given slug.
	FindBySlug(ctx context.Context, slug string) (*catalog.Product, error)

	// FindAll returns all products, newest insertion first.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]catalog.Product, error)

	// Create adds a new product to the system. A zero ID is replaced with a
	// fresh identifier and zero timestamps with the current time.
	Create(ctx context.Context, product catalog.Product) (*catalog.Product, error)

	// Update merges the given fields into an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*catalog.Product, error)

	// UpdateStatus sets the lifecycle status of a product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdateStatus(ctx context.Context, id uuid.UUID, status catalog.Status) (*catalog.Product, error)

	// BulkUpdateStatus sets the status on every product whose id is in ids
	// and whose current status may transition to it. Unknown ids are reported
	// in BulkResult.Missing and illegal transitions in BulkResult.Skipped,
	// not treated as errors.
	BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status catalog.Status) (*BulkResult, error)

	// BulkUpdateCategory moves every product whose id is in ids to the category.
	// Unknown ids are reported in BulkResult.Missing, not treated as errors.
	BulkUpdateCategory(ctx context.Context, ids []uuid.UUID, category string) (*BulkResult, error)

	// ListVendors returns all vendor profiles.
	ListVendors(ctx context.Context) ([]catalog.Vendor, error)

	// FindVendorByID retrieves a vendor profile.
	// Returns ErrVendorNotFound if no vendor exists with the given ID.
	FindVendorByID(ctx context.Context, id string) (*catalog.Vendor, error)
}

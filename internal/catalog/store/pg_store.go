package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nstepura/matmarket/internal/catalog"
	caterrors "github.com/nstepura/matmarket/internal/catalog/errors"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

const productColumns = `id, slug, name, description, price, original_price, category, subcategory,
	vendor_id, images, stock, status, created_at, updated_at, sku, tags, specifications`

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	var status string
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price, &p.OriginalPrice,
		&p.Category, &p.Subcategory, &p.VendorID, &p.Images, &p.Stock, &status,
		&p.CreatedAt, &p.UpdatedAt, &p.SKU, &p.Tags, &p.Specifications)
	if err != nil {
		return nil, err
	}
	p.Status = catalog.Status(status)
	return &p, nil
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	row := p.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindBySlug retrieves a product by its slug.
// Returns ErrProductNotFound if no product exists with the given slug.
func (p *PgStore) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	row := p.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by slug: %w", err)
	}
	return product, nil
}

// FindAll retrieves all products, newest insertion first.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]catalog.Product, error) {
	rows, err := p.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()

	products := make([]catalog.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// Create adds a new product to the system.
// Returns an error if the product cannot be created.
func (p *PgStore) Create(ctx context.Context, product catalog.Product) (*catalog.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}
	row := p.db.QueryRow(ctx, `
		INSERT INTO products (id, slug, name, description, price, original_price, category, subcategory,
			vendor_id, images, stock, status, created_at, updated_at, sku, tags, specifications)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+productColumns,
		product.ID, product.Slug, product.Name, product.Description, product.Price, product.OriginalPrice,
		product.Category, product.Subcategory, product.VendorID, product.Images, product.Stock,
		string(product.Status), product.CreatedAt, product.UpdatedAt, product.SKU, product.Tags,
		product.Specifications)
	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// Update merges the given fields into an existing product. The row is locked
// for the duration of the read-modify-write so overlapping updates to the
// same product apply in arrival order.
func (p *PgStore) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*catalog.Product, error) {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
	current, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to lock product for update: %w", err)
	}

	merged := merge(*current, params)
	row = tx.QueryRow(ctx, `
		UPDATE products SET slug = $2, name = $3, description = $4, price = $5, original_price = $6,
			category = $7, subcategory = $8, images = $9, stock = $10, status = $11, sku = $12,
			tags = $13, specifications = $14, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, merged.Slug, merged.Name, merged.Description, merged.Price, merged.OriginalPrice,
		merged.Category, merged.Subcategory, merged.Images, merged.Stock, string(merged.Status),
		merged.SKU, merged.Tags, merged.Specifications)
	updated, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product update: %w", err)
	}
	return updated, nil
}

// UpdateStatus sets the lifecycle status of a product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) UpdateStatus(ctx context.Context, id uuid.UUID, status catalog.Status) (*catalog.Product, error) {
	row := p.db.QueryRow(ctx, `
		UPDATE products SET status = $2, updated_at = now() WHERE id = $1
		RETURNING `+productColumns, id, string(status))
	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product status: %w", err)
	}
	return updated, nil
}

// BulkUpdateStatus sets the status on every matching product whose current
// status may transition to it, in one transaction. Unknown ids are reported
// as missing, illegal transitions as skipped.
func (p *PgStore) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status catalog.Status) (*BulkResult, error) {
	sources := make([]string, 0, 5)
	for _, s := range catalog.TransitionSources(status) {
		sources = append(sources, string(s))
	}

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		UPDATE products SET status = $2, updated_at = now()
		WHERE id = ANY($1) AND status = ANY($3)
		RETURNING id`, ids, string(status), sources)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk update status: %w", err)
	}
	applied, err := collectIDs(rows)
	if err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx, `SELECT id FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bulk ids: %w", err)
	}
	existing, err := collectIDs(rows)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit bulk status update: %w", err)
	}

	result := &BulkResult{}
	for _, id := range ids {
		switch {
		case applied[id]:
			result.Applied = append(result.Applied, id)
		case existing[id]:
			result.Skipped = append(result.Skipped, id)
		default:
			result.Missing = append(result.Missing, id)
		}
	}
	return result, nil
}

// BulkUpdateCategory moves every matching product to the category in one statement.
// Unknown ids are reported as missing.
func (p *PgStore) BulkUpdateCategory(ctx context.Context, ids []uuid.UUID, category string) (*BulkResult, error) {
	rows, err := p.db.Query(ctx, `
		UPDATE products SET category = $2, updated_at = now() WHERE id = ANY($1)
		RETURNING id`, ids, category)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk update category: %w", err)
	}
	return collectBulkResult(rows, ids)
}

// ListVendors returns all vendor profiles.
func (p *PgStore) ListVendors(ctx context.Context) ([]catalog.Vendor, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, name, logo, description, rating, products_count FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	vendors := make([]catalog.Vendor, 0)
	for rows.Next() {
		var v catalog.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Logo, &v.Description, &v.Rating, &v.ProductsCount); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vendors: %w", err)
	}
	return vendors, nil
}

// FindVendorByID retrieves a vendor profile.
// Returns ErrVendorNotFound if no vendor exists with the given ID.
func (p *PgStore) FindVendorByID(ctx context.Context, id string) (*catalog.Vendor, error) {
	var v catalog.Vendor
	err := p.db.QueryRow(ctx, `
		SELECT id, name, logo, description, rating, products_count FROM vendors WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Logo, &v.Description, &v.Rating, &v.ProductsCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to find vendor by ID: %w", err)
	}
	return &v, nil
}

func collectIDs(rows pgx.Rows) (map[uuid.UUID]bool, error) {
	defer rows.Close()

	found := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bulk result: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bulk result: %w", err)
	}
	return found, nil
}

func collectBulkResult(rows pgx.Rows, ids []uuid.UUID) (*BulkResult, error) {
	applied, err := collectIDs(rows)
	if err != nil {
		return nil, err
	}
	result := &BulkResult{}
	for _, id := range ids {
		if applied[id] {
			result.Applied = append(result.Applied, id)
		} else {
			result.Missing = append(result.Missing, id)
		}
	}
	return result, nil
}

// merge applies the non-nil fields of params on top of current.
func merge(current catalog.Product, params UpdateParams) catalog.Product {
	if params.Slug != nil {
		current.Slug = *params.Slug
	}
	if params.Name != nil {
		current.Name = *params.Name
	}
	if params.Description != nil {
		current.Description = *params.Description
	}
	if params.Price != nil {
		current.Price = *params.Price
	}
	if params.OriginalPrice != nil {
		current.OriginalPrice = params.OriginalPrice
	}
	if params.Category != nil {
		current.Category = *params.Category
	}
	if params.Subcategory != nil {
		current.Subcategory = *params.Subcategory
	}
	if params.Images != nil {
		current.Images = params.Images
	}
	if params.Stock != nil {
		current.Stock = *params.Stock
	}
	if params.Status != nil {
		current.Status = *params.Status
	}
	if params.SKU != nil {
		current.SKU = *params.SKU
	}
	if params.Tags != nil {
		current.Tags = params.Tags
	}
	if params.Specifications != nil {
		current.Specifications = params.Specifications
	}
	return current
}

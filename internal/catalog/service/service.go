// Package service provides the implementation of catalog business logic.
// Role-scoped visibility is enforced here, not in transport, so a caller
// cannot bypass it by hitting the read API directly.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/auth"
	"github.com/nstepura/matmarket/internal/catalog"
	caterrors "github.com/nstepura/matmarket/internal/catalog/errors"
	"github.com/nstepura/matmarket/internal/catalog/query"
	"github.com/nstepura/matmarket/internal/catalog/seed"
	"github.com/nstepura/matmarket/internal/catalog/store"
)

// CatalogService defines the methods for browsing and managing products.
// It abstracts the underlying business logic and data access.
type CatalogService interface {
	// List returns one page of the products visible to the caller after
	// filtering and sorting.
	List(ctx context.Context, q ListQuery) (*ProductListDto, error)

	// FindByID retrieves a single product visible to the caller.
	// Returns ErrProductNotFound if it does not exist or is out of scope.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// FindBySlug retrieves a single product visible to the caller by slug.
	// Returns ErrProductNotFound if it does not exist or is out of scope.
	FindBySlug(ctx context.Context, slug string) (*ProductDto, error)

	// Create adds a new listing for the calling vendor. The initial status
	// is always pending regardless of the caller.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update merges the provided fields into one of the caller's listings.
	// Returns ErrProductNotFound / ErrAccessDenied / ErrInvalidTransition.
	Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error)

	// Delete soft-deletes one of the caller's listings by setting its
	// status to inactive. The record is never removed.
	Delete(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// Approve transitions a listing to active. Admin only.
	Approve(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// Reject transitions a listing to rejected. Admin only.
	Reject(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// Flag marks a listing for review. Admin only.
	Flag(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// ModerationQueue returns the pending and flagged listings. Admin only.
	ModerationQueue(ctx context.Context) (*ModerationQueueDto, error)

	// BulkDelete soft-deletes every listed product. Best-effort; unknown
	// ids and illegal transitions are reported, not errors. Admin only.
	BulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkResultDto, error)

	// BulkUpdateStatus sets the status on every listed product whose
	// lifecycle state allows it. Best-effort; unknown ids and illegal
	// transitions are reported, not errors. Admin only.
	BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status catalog.Status) (*BulkResultDto, error)

	// BulkUpdateCategory moves every listed product to a category. Admin only.
	BulkUpdateCategory(ctx context.Context, ids []uuid.UUID, category string) (*BulkResultDto, error)

	// Import validates pre-parsed upload rows and creates the valid ones as
	// pending listings for the calling vendor. Invalid rows are reported
	// per row and skipped.
	Import(ctx context.Context, rows []ImportRow) (*ImportReportDto, error)

	// ListVendors returns all vendor profiles.
	ListVendors(ctx context.Context) ([]VendorDto, error)

	// FindVendorByID retrieves a vendor profile.
	// Returns ErrVendorNotFound if no vendor exists with the given ID.
	FindVendorByID(ctx context.Context, id string) (*VendorDto, error)

	// Categories returns the browsable top-level categories.
	Categories(ctx context.Context) []string
}

// Service implements CatalogService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of CatalogService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ListQuery carries the browse parameters: filter options, sort key and
// 1-indexed pagination. It is recreated per request and has no identity.
type ListQuery struct {
	Search   string
	Category string
	VendorID string
	PriceMin int64
	PriceMax int64
	InStock  bool
	Status   catalog.Status
	SortBy   query.SortOption
	Page     int
	PageSize int
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID             string            `json:"id"`
	Slug           string            `json:"slug"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          int64             `json:"price"`
	OriginalPrice  *int64            `json:"original_price,omitempty"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory,omitempty"`
	VendorID       string            `json:"vendor_id"`
	Images         []string          `json:"images"`
	Stock          int32             `json:"stock"`
	Status         string            `json:"status"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
	SKU            string            `json:"sku"`
	Tags           []string          `json:"tags"`
	Specifications map[string]string `json:"specifications"`
}

// ProductListDto is one page of products plus totals over the whole result.
type ProductListDto struct {
	Products   []ProductDto `json:"products"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	TotalItems int          `json:"total_items"`
}

// ProductCreateDto represents the data transfer object for creating a new product.
// The owning vendor and the initial status come from the caller context.
type ProductCreateDto struct {
	Slug           string            `json:"slug"            validate:"omitempty,max=200"`
	Name           string            `json:"name"            validate:"required,max=200"`
	Description    string            `json:"description"     validate:"max=2000"`
	Price          int64             `json:"price"           validate:"required,min=0"`
	OriginalPrice  *int64            `json:"original_price"  validate:"omitempty,min=0"`
	Category       string            `json:"category"        validate:"required,max=100"`
	Subcategory    string            `json:"subcategory"     validate:"max=100"`
	Images         []string          `json:"images"          validate:"dive,url"`
	Stock          int32             `json:"stock"           validate:"min=0"`
	SKU            string            `json:"sku"             validate:"required,max=64"`
	Tags           []string          `json:"tags"            validate:"dive,max=64"`
	Specifications map[string]string `json:"specifications"`
}

// ProductUpdateDto represents a partial update; nil fields are left unchanged.
// Vendors may only toggle status between active and inactive.
type ProductUpdateDto struct {
	Slug           *string           `json:"slug"            validate:"omitempty,max=200"`
	Name           *string           `json:"name"            validate:"omitempty,min=1,max=200"`
	Description    *string           `json:"description"     validate:"omitempty,max=2000"`
	Price          *int64            `json:"price"           validate:"omitempty,min=0"`
	OriginalPrice  *int64            `json:"original_price"  validate:"omitempty,min=0"`
	Category       *string           `json:"category"        validate:"omitempty,max=100"`
	Subcategory    *string           `json:"subcategory"     validate:"omitempty,max=100"`
	Images         []string          `json:"images"          validate:"omitempty,dive,url"`
	Stock          *int32            `json:"stock"           validate:"omitempty,min=0"`
	Status         *string           `json:"status"          validate:"omitempty,oneof=active inactive"`
	SKU            *string           `json:"sku"             validate:"omitempty,max=64"`
	Tags           []string          `json:"tags"            validate:"omitempty,dive,max=64"`
	Specifications map[string]string `json:"specifications"`
}

// VendorDto represents the data transfer object for a vendor profile.
type VendorDto struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Logo          string  `json:"logo"`
	Description   string  `json:"description"`
	Rating        float64 `json:"rating"`
	ProductsCount int32   `json:"products_count"`
}

// ModerationQueueDto holds the listings awaiting an admin decision.
type ModerationQueueDto struct {
	Pending []ProductDto `json:"pending"`
	Flagged []ProductDto `json:"flagged"`
}

// BulkResultDto reports a best-effort bulk mutation outcome. Skipped lists
// ids whose lifecycle state forbids the requested status change.
type BulkResultDto struct {
	Applied []string `json:"applied"`
	Missing []string `json:"missing"`
	Skipped []string `json:"skipped"`
}

// List returns one page of visible products after filter -> sort -> paginate.
func (s *Service) List(ctx context.Context, q ListQuery) (*ProductListDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	visible := scopeProducts(products, auth.FromContext(ctx))

	filtered := query.Filter(visible, query.FilterOptions{
		Search:   q.Search,
		Category: q.Category,
		VendorID: q.VendorID,
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		InStock:  q.InStock,
		Status:   q.Status,
	})
	sorted := query.Sort(filtered, q.SortBy)
	page := query.Paginate(sorted, q.Page, q.PageSize)

	dtos := make([]ProductDto, len(page.Products))
	for i, p := range page.Products {
		dtos[i] = *toDto(&p)
	}
	return &ProductListDto{
		Products:   dtos,
		Page:       q.Page,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}, nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Products outside the caller's scope are reported as not found.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	if !visibleTo(*product, auth.FromContext(ctx)) {
		return nil, caterrors.ErrProductNotFound
	}
	return toDto(product), nil
}

// FindBySlug retrieves a product by its slug and returns it as a ProductDto.
// Products outside the caller's scope are reported as not found.
func (s *Service) FindBySlug(ctx context.Context, slug string) (*ProductDto, error) {
	product, err := s.repository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by slug %q: %w", slug, err)
	}
	if !visibleTo(*product, auth.FromContext(ctx)) {
		return nil, caterrors.ErrProductNotFound
	}
	return toDto(product), nil
}

// Create creates a new pending listing owned by the calling vendor.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	caller := auth.FromContext(ctx)
	if caller.Role != catalog.RoleVendor && caller.Role != catalog.RoleAdmin {
		return nil, caterrors.ErrAccessDenied
	}
	vendorID := caller.VendorID
	if vendorID == "" {
		return nil, caterrors.ErrAccessDenied
	}

	created, err := s.repository.Create(ctx, catalog.Product{
		ID:             uuid.New(),
		Slug:           product.Slug,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		OriginalPrice:  product.OriginalPrice,
		Category:       product.Category,
		Subcategory:    product.Subcategory,
		VendorID:       vendorID,
		Images:         product.Images,
		Stock:          product.Stock,
		Status:         catalog.StatusPending,
		SKU:            product.SKU,
		Tags:           product.Tags,
		Specifications: product.Specifications,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toDto(created), nil
}

// Update merges the provided fields into one of the caller's listings.
func (s *Service) Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error) {
	caller := auth.FromContext(ctx)
	current, err := s.ownedProduct(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	params := store.UpdateParams{
		Slug:           product.Slug,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		OriginalPrice:  product.OriginalPrice,
		Category:       product.Category,
		Subcategory:    product.Subcategory,
		Images:         product.Images,
		Stock:          product.Stock,
		SKU:            product.SKU,
		Tags:           product.Tags,
		Specifications: product.Specifications,
	}
	if product.Status != nil {
		next := catalog.Status(*product.Status)
		if !current.Status.CanTransition(next) {
			return nil, fmt.Errorf("cannot move product %s from %s to %s: %w",
				id, current.Status, next, caterrors.ErrInvalidTransition)
		}
		params.Status = &next
	}

	updated, err := s.repository.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	return toDto(updated), nil
}

// Delete soft-deletes a listing by setting its status to inactive.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	caller := auth.FromContext(ctx)
	current, err := s.ownedProduct(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransition(catalog.StatusInactive) {
		return nil, fmt.Errorf("cannot deactivate product %s in status %s: %w",
			id, current.Status, caterrors.ErrInvalidTransition)
	}

	deleted, err := s.repository.UpdateStatus(ctx, id, catalog.StatusInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate product with ID %s: %w", id, err)
	}
	return toDto(deleted), nil
}

// Approve transitions a listing to active.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	return s.moderate(ctx, id, catalog.StatusActive)
}

// Reject transitions a listing to rejected. Rejecting an already rejected
// listing is an accepted no-op.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	return s.moderate(ctx, id, catalog.StatusRejected)
}

// Flag marks a listing for review.
func (s *Service) Flag(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	return s.moderate(ctx, id, catalog.StatusFlagged)
}

// ModerationQueue returns pending and flagged listings for the admin dashboard.
func (s *Service) ModerationQueue(ctx context.Context) (*ModerationQueueDto, error) {
	if auth.FromContext(ctx).Role != catalog.RoleAdmin {
		return nil, caterrors.ErrAccessDenied
	}
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	queue := &ModerationQueueDto{Pending: []ProductDto{}, Flagged: []ProductDto{}}
	for _, p := range products {
		switch p.Status {
		case catalog.StatusPending:
			queue.Pending = append(queue.Pending, *toDto(&p))
		case catalog.StatusFlagged:
			queue.Flagged = append(queue.Flagged, *toDto(&p))
		}
	}
	return queue, nil
}

// BulkDelete soft-deletes every listed product.
func (s *Service) BulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkResultDto, error) {
	return s.bulkStatus(ctx, ids, catalog.StatusInactive)
}

// BulkUpdateStatus sets the status on every listed product.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status catalog.Status) (*BulkResultDto, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, caterrors.ErrInvalidTransition)
	}
	return s.bulkStatus(ctx, ids, status)
}

// BulkUpdateCategory moves every listed product to the given category.
func (s *Service) BulkUpdateCategory(ctx context.Context, ids []uuid.UUID, category string) (*BulkResultDto, error) {
	if auth.FromContext(ctx).Role != catalog.RoleAdmin {
		return nil, caterrors.ErrAccessDenied
	}
	result, err := s.repository.BulkUpdateCategory(ctx, ids, category)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk update category: %w", err)
	}
	return toBulkDto(result), nil
}

// ListVendors returns all vendor profiles.
func (s *Service) ListVendors(ctx context.Context) ([]VendorDto, error) {
	vendors, err := s.repository.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vendors: %w", err)
	}
	dtos := make([]VendorDto, len(vendors))
	for i, v := range vendors {
		dtos[i] = *toVendorDto(&v)
	}
	return dtos, nil
}

// Categories returns the fixed browse taxonomy.
func (s *Service) Categories(_ context.Context) []string {
	return seed.Categories()
}

// FindVendorByID retrieves a vendor profile as a VendorDto.
func (s *Service) FindVendorByID(ctx context.Context, id string) (*VendorDto, error) {
	vendor, err := s.repository.FindVendorByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vendor by ID %s: %w", id, err)
	}
	return toVendorDto(vendor), nil
}

func (s *Service) moderate(ctx context.Context, id uuid.UUID, next catalog.Status) (*ProductDto, error) {
	if auth.FromContext(ctx).Role != catalog.RoleAdmin {
		return nil, caterrors.ErrAccessDenied
	}
	current, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	if !current.Status.CanTransition(next) {
		return nil, fmt.Errorf("cannot move product %s from %s to %s: %w",
			id, current.Status, next, caterrors.ErrInvalidTransition)
	}

	updated, err := s.repository.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update status for product with ID %s: %w", id, err)
	}
	return toDto(updated), nil
}

func (s *Service) bulkStatus(ctx context.Context, ids []uuid.UUID, status catalog.Status) (*BulkResultDto, error) {
	if auth.FromContext(ctx).Role != catalog.RoleAdmin {
		return nil, caterrors.ErrAccessDenied
	}
	result, err := s.repository.BulkUpdateStatus(ctx, ids, status)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk update status: %w", err)
	}
	return toBulkDto(result), nil
}

// ownedProduct fetches a product and checks the caller may mutate it:
// admins may mutate anything, vendors only their own listings.
func (s *Service) ownedProduct(ctx context.Context, caller auth.Caller, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	switch caller.Role {
	case catalog.RoleAdmin:
		return product, nil
	case catalog.RoleVendor:
		if product.VendorID != caller.VendorID {
			return nil, caterrors.ErrAccessDenied
		}
		return product, nil
	default:
		return nil, caterrors.ErrAccessDenied
	}
}

// scopeProducts narrows the collection to what the caller may see:
// everything for admins, active plus own listings for vendors, active
// only for the public.
func scopeProducts(products []catalog.Product, caller auth.Caller) []catalog.Product {
	if caller.Role == catalog.RoleAdmin {
		return products
	}
	visible := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if visibleTo(p, caller) {
			visible = append(visible, p)
		}
	}
	return visible
}

func visibleTo(p catalog.Product, caller auth.Caller) bool {
	switch caller.Role {
	case catalog.RoleAdmin:
		return true
	case catalog.RoleVendor:
		return p.Status == catalog.StatusActive || p.VendorID == caller.VendorID
	default:
		return p.Status == catalog.StatusActive
	}
}

// toDto converts a catalog.Product to a ProductDto.
func toDto(product *catalog.Product) *ProductDto {
	return &ProductDto{
		ID:             product.ID.String(),
		Slug:           product.Slug,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		OriginalPrice:  product.OriginalPrice,
		Category:       product.Category,
		Subcategory:    product.Subcategory,
		VendorID:       product.VendorID,
		Images:         product.Images,
		Stock:          product.Stock,
		Status:         string(product.Status),
		CreatedAt:      product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      product.UpdatedAt.Format(time.RFC3339),
		SKU:            product.SKU,
		Tags:           product.Tags,
		Specifications: product.Specifications,
	}
}

// toVendorDto converts a catalog.Vendor to a VendorDto.
func toVendorDto(vendor *catalog.Vendor) *VendorDto {
	return &VendorDto{
		ID:            vendor.ID,
		Name:          vendor.Name,
		Logo:          vendor.Logo,
		Description:   vendor.Description,
		Rating:        vendor.Rating,
		ProductsCount: vendor.ProductsCount,
	}
}

func toBulkDto(result *store.BulkResult) *BulkResultDto {
	dto := &BulkResultDto{Applied: []string{}, Missing: []string{}, Skipped: []string{}}
	for _, id := range result.Applied {
		dto.Applied = append(dto.Applied, id.String())
	}
	for _, id := range result.Missing {
		dto.Missing = append(dto.Missing, id.String())
	}
	for _, id := range result.Skipped {
		dto.Skipped = append(dto.Skipped, id.String())
	}
	return dto
}

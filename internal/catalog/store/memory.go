package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/catalog"
	caterrors "github.com/nstepura/matmarket/internal/catalog/errors"
)

// memory implements ProductStore using mutex-guarded in-process maps.
// The store-wide lock serializes mutations in invocation order, so two
// overlapping updates to the same product apply deterministically.
type memory struct {
	mu       sync.RWMutex
	products map[uuid.UUID]catalog.Product
	order    []uuid.UUID // newest first
	vendors  []catalog.Vendor
}

// NewMemoryStore creates a ProductStore holding the given seed data.
func NewMemoryStore(products []catalog.Product, vendors []catalog.Vendor) ProductStore {
	s := &memory{
		products: make(map[uuid.UUID]catalog.Product, len(products)),
		order:    make([]uuid.UUID, 0, len(products)),
		vendors:  vendors,
	}
	for _, p := range products {
		s.products[p.ID] = p.Clone()
		s.order = append(s.order, p.ID)
	}
	return s
}

func (s *memory) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, caterrors.ErrProductNotFound
	}
	c := p.Clone()
	return &c, nil
}

func (s *memory) FindBySlug(_ context.Context, slug string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Slug == slug {
			c := p.Clone()
			return &c, nil
		}
	}
	return nil, caterrors.ErrProductNotFound
}

func (s *memory) FindAll(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]catalog.Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.products[id].Clone())
	}
	return list, nil
}

func (s *memory) Create(_ context.Context, product catalog.Product) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := product.Clone()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	s.products[p.ID] = p
	// New listings go to the head of the collection.
	s.order = append([]uuid.UUID{p.ID}, s.order...)

	c := p.Clone()
	return &c, nil
}

func (s *memory) Update(_ context.Context, id uuid.UUID, params UpdateParams) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(id, params)
}

func (s *memory) UpdateStatus(_ context.Context, id uuid.UUID, status catalog.Status) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(id, UpdateParams{Status: &status})
}

func (s *memory) BulkUpdateStatus(_ context.Context, ids []uuid.UUID, status catalog.Status) (*BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &BulkResult{}
	for _, id := range ids {
		current, ok := s.products[id]
		if !ok {
			result.Missing = append(result.Missing, id)
			continue
		}
		if !current.Status.CanTransition(status) {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		if _, err := s.applyLocked(id, UpdateParams{Status: &status}); err != nil {
			result.Missing = append(result.Missing, id)
			continue
		}
		result.Applied = append(result.Applied, id)
	}
	return result, nil
}

func (s *memory) BulkUpdateCategory(_ context.Context, ids []uuid.UUID, category string) (*BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &BulkResult{}
	for _, id := range ids {
		if _, err := s.applyLocked(id, UpdateParams{Category: &category}); err != nil {
			result.Missing = append(result.Missing, id)
			continue
		}
		result.Applied = append(result.Applied, id)
	}
	return result, nil
}

func (s *memory) ListVendors(_ context.Context) ([]catalog.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]catalog.Vendor, len(s.vendors))
	copy(list, s.vendors)
	return list, nil
}

func (s *memory) FindVendorByID(_ context.Context, id string) (*catalog.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.vendors {
		if v.ID == id {
			c := v
			return &c, nil
		}
	}
	return nil, caterrors.ErrVendorNotFound
}

// applyLocked merges params into the product with the given id.
// Callers must hold the write lock.
func (s *memory) applyLocked(id uuid.UUID, params UpdateParams) (*catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, caterrors.ErrProductNotFound
	}

	if params.Slug != nil {
		p.Slug = *params.Slug
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	if params.OriginalPrice != nil {
		v := *params.OriginalPrice
		p.OriginalPrice = &v
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Subcategory != nil {
		p.Subcategory = *params.Subcategory
	}
	if params.Images != nil {
		p.Images = append([]string(nil), params.Images...)
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}
	if params.Status != nil {
		p.Status = *params.Status
	}
	if params.SKU != nil {
		p.SKU = *params.SKU
	}
	if params.Tags != nil {
		p.Tags = append([]string(nil), params.Tags...)
	}
	if params.Specifications != nil {
		specs := make(map[string]string, len(params.Specifications))
		for k, v := range params.Specifications {
			specs[k] = v
		}
		p.Specifications = specs
	}
	p.UpdatedAt = time.Now().UTC()

	s.products[id] = p
	c := p.Clone()
	return &c, nil
}

// Package service implements the shopping cart business logic.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/cart"
	carterrors "github.com/nstepura/matmarket/internal/cart/errors"
	"github.com/nstepura/matmarket/internal/cart/store"
	"github.com/nstepura/matmarket/internal/catalog"
)

// ProductFinder looks up catalog products for cart operations.
type ProductFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

// CartService defines the methods for managing a user's shopping cart.
type CartService interface {
	// Get returns the user's cart with computed totals.
	Get(ctx context.Context, userID string) (*CartDto, error)

	// AddItem puts a product into the cart. The stored quantity is the
	// merge of any existing line with the requested amount, clamped to
	// the available stock. Returns ErrProductUnavailable if the product
	// is not active or has no stock.
	AddItem(ctx context.Context, userID string, productID uuid.UUID, quantity int32) (*CartDto, error)

	// UpdateQuantity sets the quantity on an existing line, clamped to
	// the line's stock. A quantity of zero or less removes the line.
	// Returns ErrItemNotFound if the line does not exist.
	UpdateQuantity(ctx context.Context, userID string, productID uuid.UUID, quantity int32) (*CartDto, error)

	// RemoveItem drops a line from the cart.
	// Returns ErrItemNotFound if the line does not exist.
	RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (*CartDto, error)

	// Clear empties the cart.
	Clear(ctx context.Context, userID string) (*CartDto, error)
}

// Service implements CartService over a cart store and a catalog lookup.
type Service struct {
	carts    store.CartStore
	products ProductFinder
}

// NewService creates a new instance of CartService.
func NewService(carts store.CartStore, products ProductFinder) *Service {
	return &Service{carts: carts, products: products}
}

// ItemDto is one cart line as exposed over the API. The product fields are
// the frozen snapshot, not the live catalog record.
type ItemDto struct {
	ProductID string `json:"product_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
	VendorID  string `json:"vendor_id"`
	Stock     int32  `json:"stock"`
	Quantity  int32  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

// CartDto is a user's cart with totals computed over all lines.
type CartDto struct {
	Items      []ItemDto `json:"items"`
	TotalItems int32     `json:"total_items"`
	TotalPrice int64     `json:"total_price"`
}

// Get returns the user's cart with computed totals.
func (s *Service) Get(ctx context.Context, userID string) (*CartDto, error) {
	lines, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart for user %s: %w", userID, err)
	}
	return toDto(lines), nil
}

// AddItem puts a product into the cart, merging with any existing line.
func (s *Service) AddItem(ctx context.Context, userID string, productID uuid.UUID, quantity int32) (*CartDto, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}
	if product.Status != catalog.StatusActive || product.Stock <= 0 {
		return nil, fmt.Errorf("product %s: %w", productID, carterrors.ErrProductUnavailable)
	}

	merged := quantity
	if existing, err := s.carts.Find(ctx, userID, productID); err == nil {
		merged += existing.Quantity
	}
	line := cart.Line{
		Product:  *product,
		Quantity: clamp(merged, product.Stock),
	}
	if err := s.carts.Put(ctx, userID, line); err != nil {
		return nil, fmt.Errorf("failed to store cart line for user %s: %w", userID, err)
	}
	return s.Get(ctx, userID)
}

// UpdateQuantity sets the quantity on an existing line.
func (s *Service) UpdateQuantity(ctx context.Context, userID string, productID uuid.UUID, quantity int32) (*CartDto, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	line, err := s.carts.Find(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart line for user %s: %w", userID, err)
	}
	line.Quantity = clamp(quantity, line.Product.Stock)
	if err := s.carts.Put(ctx, userID, *line); err != nil {
		return nil, fmt.Errorf("failed to store cart line for user %s: %w", userID, err)
	}
	return s.Get(ctx, userID)
}

// RemoveItem drops a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (*CartDto, error) {
	if err := s.carts.Remove(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("failed to remove cart line for user %s: %w", userID, err)
	}
	return s.Get(ctx, userID)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, userID string) (*CartDto, error) {
	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return &CartDto{Items: []ItemDto{}}, nil
}

// clamp bounds a requested quantity to [1, stock].
func clamp(quantity, stock int32) int32 {
	if quantity < 1 {
		return 1
	}
	if quantity > stock {
		return stock
	}
	return quantity
}

func toDto(lines []cart.Line) *CartDto {
	dto := &CartDto{Items: make([]ItemDto, 0, len(lines))}
	for _, l := range lines {
		item := ItemDto{
			ProductID: l.Product.ID.String(),
			Slug:      l.Product.Slug,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			VendorID:  l.Product.VendorID,
			Stock:     l.Product.Stock,
			Quantity:  l.Quantity,
			LineTotal: l.Product.Price * int64(l.Quantity),
		}
		if len(l.Product.Images) > 0 {
			item.Image = l.Product.Images[0]
		}
		dto.Items = append(dto.Items, item)
		dto.TotalItems += l.Quantity
		dto.TotalPrice += item.LineTotal
	}
	return dto
}

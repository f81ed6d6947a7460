// Package catalog defines the core entities of the marketplace catalog.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Status is the moderation lifecycle state of a product listing.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusRejected Status = "rejected"
	StatusFlagged  Status = "flagged"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive, StatusRejected, StatusFlagged:
		return true
	}
	return false
}

// TransitionSources returns the statuses from which a listing may move to next.
func TransitionSources(next Status) []Status {
	all := []Status{StatusPending, StatusActive, StatusInactive, StatusRejected, StatusFlagged}
	sources := make([]Status, 0, len(all))
	for _, s := range all {
		if s.CanTransition(next) {
			sources = append(sources, s)
		}
	}
	return sources
}

// CanTransition reports whether a listing may move from s to next.
// A transition to the current state is always allowed, so moderation
// actions are idempotent.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusActive || next == StatusRejected || next == StatusFlagged
	case StatusActive:
		return next == StatusFlagged || next == StatusInactive
	case StatusFlagged:
		return next == StatusActive || next == StatusRejected
	case StatusInactive:
		return next == StatusActive
	default:
		return false
	}
}

// Role is the caller's visibility level.
type Role string

const (
	RolePublic Role = "public"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RolePublic || r == RoleVendor || r == RoleAdmin
}

// Product is a marketplace listing. Prices are stored in cents.
type Product struct {
	ID             uuid.UUID
	Slug           string
	Name           string
	Description    string
	Price          int64
	OriginalPrice  *int64
	Category       string
	Subcategory    string
	VendorID       string
	Images         []string
	Stock          int32
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SKU            string
	Tags           []string
	Specifications map[string]string
}

// Clone returns a deep copy of the product so callers cannot alias the
// slices and maps held by a store.
func (p Product) Clone() Product {
	c := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		c.OriginalPrice = &v
	}
	if p.Images != nil {
		c.Images = make([]string, len(p.Images))
		copy(c.Images, p.Images)
	}
	if p.Tags != nil {
		c.Tags = make([]string, len(p.Tags))
		copy(c.Tags, p.Tags)
	}
	if p.Specifications != nil {
		c.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			c.Specifications[k] = v
		}
	}
	return c
}

// Vendor is a seller profile. ProductsCount is informational and is not
// kept consistent with the actual product list.
type Vendor struct {
	ID            string
	Name          string
	Logo          string
	Description   string
	Rating        float64
	ProductsCount int32
}

// Package query implements the product query pipeline: filtering, sorting
// and pagination over an in-memory product collection. All functions are
// pure; callers compose them as Filter -> Sort -> Paginate.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/nstepura/matmarket/internal/catalog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption selects the ordering applied by Sort.
type SortOption string

const (
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
	SortNewest    SortOption = "newest"
	SortName      SortOption = "name"
)

// FilterOptions selects a subset of products. A zero value for a field
// disables the corresponding predicate.
type FilterOptions struct {
	Search   string
	Category string
	VendorID string
	PriceMin int64
	PriceMax int64
	InStock  bool
	Status   catalog.Status
}

// Filter keeps the products for which every active predicate holds.
// Input order is preserved.
func Filter(products []catalog.Product, opts FilterOptions) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if matches(p, opts) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p catalog.Product, opts FilterOptions) bool {
	if opts.Search != "" && !matchesSearch(p, opts.Search) {
		return false
	}
	if opts.Category != "" && p.Category != opts.Category {
		return false
	}
	if opts.VendorID != "" && p.VendorID != opts.VendorID {
		return false
	}
	if p.Price < opts.PriceMin {
		return false
	}
	if opts.PriceMax > 0 && p.Price > opts.PriceMax {
		return false
	}
	if opts.InStock && p.Stock <= 0 {
		return false
	}
	if opts.Status != "" && p.Status != opts.Status {
		return false
	}
	return true
}

// matchesSearch reports whether the search term occurs, case-insensitively,
// in the product name, description, category or any tag.
func matchesSearch(p catalog.Product, search string) bool {
	term := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy of products; the input is not mutated.
// An unknown sort option returns the copy in its original order.
func Sort(products []catalog.Product, sortBy SortOption) []catalog.Product {
	sorted := slices.Clone(products)
	switch sortBy {
	case SortPriceLow:
		slices.SortStableFunc(sorted, func(a, b catalog.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(sorted, func(a, b catalog.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortNewest:
		slices.SortStableFunc(sorted, func(a, b catalog.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortName:
		coll := collate.New(language.English)
		slices.SortStableFunc(sorted, func(a, b catalog.Product) int {
			return coll.CompareString(a.Name, b.Name)
		})
	}
	return sorted
}

// Page is the result of Paginate: one page of products plus totals
// computed over the whole input.
type Page struct {
	Products   []catalog.Product
	TotalPages int
	TotalItems int
}

// Paginate slices out the 1-indexed page of the given size. An out-of-range
// page yields an empty slice; no clamping is performed.
func Paginate(products []catalog.Product, page, pageSize int) Page {
	total := len(products)
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	start := (page - 1) * pageSize
	if page < 1 || start >= total {
		return Page{Products: []catalog.Product{}, TotalPages: totalPages, TotalItems: total}
	}
	end := min(start+pageSize, total)
	return Page{Products: products[start:end], TotalPages: totalPages, TotalItems: total}
}

package query

import (
	"testing"

	"github.com/nstepura/matmarket/internal/catalog"
	"github.com/nstepura/matmarket/internal/catalog/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Filter(t *testing.T) {
	products := seed.Products()
	testCases := []struct {
		name     string
		opts     FilterOptions
		expected []string
	}{
		{
			name:     "No options - everything passes in input order",
			opts:     FilterOptions{},
			expected: slugs(products),
		},
		{
			name:     "Search matches name case-insensitively",
			opts:     FilterOptions{Search: "bluetooth"},
			expected: []string{"wireless-bluetooth-headphones", "portable-bluetooth-speaker"},
		},
		{
			name:     "Search matches description",
			opts:     FilterOptions{Search: "wireless"},
			expected: []string{"wireless-bluetooth-headphones", "desk-lamp-led"},
		},
		{
			name:     "Category is an exact match",
			opts:     FilterOptions{Category: "Electronics"},
			expected: []string{"wireless-bluetooth-headphones", "smart-fitness-watch", "portable-bluetooth-speaker"},
		},
		{
			name:     "Vendor filter",
			opts:     FilterOptions{VendorID: "v2", Status: catalog.StatusActive},
			expected: []string{"cotton-casual-shirt", "running-shoes-pro"},
		},
		{
			name:     "Price bounds are inclusive",
			opts:     FilterOptions{PriceMin: 5999, PriceMax: 8999},
			expected: []string{"cotton-casual-shirt", "ceramic-dinner-set", "organic-skincare-set", "portable-bluetooth-speaker"},
		},
		{
			name:     "Zero max price disables the upper bound",
			opts:     FilterOptions{PriceMin: 19999},
			expected: []string{"wireless-bluetooth-headphones", "smart-fitness-watch"},
		},
		{
			name:     "In stock drops zero-stock products",
			opts:     FilterOptions{Category: "Sports", InStock: true},
			expected: []string{"yoga-mat-premium"},
		},
		{
			name:     "Status filter",
			opts:     FilterOptions{Status: catalog.StatusPending},
			expected: []string{"leather-crossbody-bag", "bestseller-book-collection"},
		},
		{
			name:     "All predicates must hold",
			opts:     FilterOptions{Category: "Electronics", InStock: true, Status: catalog.StatusActive, PriceMax: 25000},
			expected: []string{"wireless-bluetooth-headphones"},
		},
		{
			name:     "No match yields empty, not nil",
			opts:     FilterOptions{Search: "no such product"},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			got := Filter(products, tc.opts)
			// then
			assert.Equal(t, tc.expected, slugs(got))
		})
	}
}

func Test_Sort(t *testing.T) {
	products := seed.Products()

	t.Run("price-low is non-decreasing", func(t *testing.T) {
		sorted := Sort(products, SortPriceLow)
		require.Len(t, sorted, len(products))
		for i := 1; i < len(sorted); i++ {
			assert.LessOrEqual(t, sorted[i-1].Price, sorted[i].Price)
		}
	})

	t.Run("price-high is non-increasing", func(t *testing.T) {
		sorted := Sort(products, SortPriceHigh)
		require.Len(t, sorted, len(products))
		for i := 1; i < len(sorted); i++ {
			assert.GreaterOrEqual(t, sorted[i-1].Price, sorted[i].Price)
		}
	})

	t.Run("newest puts the most recent first", func(t *testing.T) {
		sorted := Sort(products, SortNewest)
		require.Len(t, sorted, len(products))
		assert.Equal(t, "wireless-bluetooth-headphones", sorted[0].Slug)
		for i := 1; i < len(sorted); i++ {
			assert.False(t, sorted[i].CreatedAt.After(sorted[i-1].CreatedAt))
		}
	})

	t.Run("name orders alphabetically", func(t *testing.T) {
		sorted := Sort(products, SortName)
		require.Len(t, sorted, len(products))
		assert.Equal(t, "Bestseller Book Collection 2024", sorted[0].Name)
		assert.Equal(t, "Wireless Bluetooth Headphones", sorted[len(sorted)-1].Name)
	})

	t.Run("unknown option keeps input order", func(t *testing.T) {
		sorted := Sort(products, SortOption("popularity"))
		assert.Equal(t, slugs(products), slugs(sorted))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := slugs(products)
		_ = Sort(products, SortPriceLow)
		assert.Equal(t, before, slugs(products))
	})
}

func Test_Paginate(t *testing.T) {
	products := seed.Products()
	testCases := []struct {
		name           string
		page           int
		pageSize       int
		expectedCount  int
		expectedPages  int
		expectedItems  int
		expectedFirst  string
	}{
		{
			name:          "First page",
			page:          1,
			pageSize:      5,
			expectedCount: 5,
			expectedPages: 3,
			expectedItems: 12,
			expectedFirst: "wireless-bluetooth-headphones",
		},
		{
			name:          "Last page is partial",
			page:          3,
			pageSize:      5,
			expectedCount: 2,
			expectedPages: 3,
			expectedItems: 12,
			expectedFirst: "desk-lamp-led",
		},
		{
			name:          "Page past the end is empty, totals intact",
			page:          4,
			pageSize:      5,
			expectedCount: 0,
			expectedPages: 3,
			expectedItems: 12,
		},
		{
			name:          "Page zero is out of range",
			page:          0,
			pageSize:      5,
			expectedCount: 0,
			expectedPages: 3,
			expectedItems: 12,
		},
		{
			name:          "Single page holds everything",
			page:          1,
			pageSize:      50,
			expectedCount: 12,
			expectedPages: 1,
			expectedItems: 12,
			expectedFirst: "wireless-bluetooth-headphones",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			page := Paginate(products, tc.page, tc.pageSize)
			// then
			assert.Len(t, page.Products, tc.expectedCount)
			assert.Equal(t, tc.expectedPages, page.TotalPages)
			assert.Equal(t, tc.expectedItems, page.TotalItems)
			if tc.expectedFirst != "" {
				require.NotEmpty(t, page.Products)
				assert.Equal(t, tc.expectedFirst, page.Products[0].Slug)
			}
		})
	}
}

// Browsing scenario: active Electronics in stock, cheapest first, one page.
func Test_QueryPipeline(t *testing.T) {
	// given
	products := seed.Products()
	// when
	filtered := Filter(products, FilterOptions{
		Category: "Electronics",
		InStock:  true,
		Status:   catalog.StatusActive,
	})
	sorted := Sort(filtered, SortPriceLow)
	page := Paginate(sorted, 1, 12)
	// then
	require.Equal(t, 2, page.TotalItems)
	assert.Equal(t, []string{"wireless-bluetooth-headphones", "smart-fitness-watch"}, slugs(page.Products))
}

func slugs(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Slug)
	}
	return out
}

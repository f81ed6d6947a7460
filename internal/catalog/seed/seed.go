// Package seed holds the static dataset the marketplace is initialized
// with when no database is configured.
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/catalog"
)

// ProductID returns the deterministic ID of the n-th seed product (1-based).
// Tests and tooling rely on these being stable across runs.
func ProductID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

// Vendors returns the static vendor profiles.
func Vendors() []catalog.Vendor {
	return []catalog.Vendor{
		{
			ID:            "v1",
			Name:          "TechStore Pro",
			Logo:          "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=100&h=100&fit=crop",
			Description:   "Premium electronics and gadgets",
			Rating:        4.8,
			ProductsCount: 156,
		},
		{
			ID:            "v2",
			Name:          "Fashion Forward",
			Logo:          "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=100&h=100&fit=crop",
			Description:   "Trendy fashion for everyone",
			Rating:        4.5,
			ProductsCount: 289,
		},
		{
			ID:            "v3",
			Name:          "Home Essentials",
			Logo:          "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=100&h=100&fit=crop",
			Description:   "Quality home and living products",
			Rating:        4.7,
			ProductsCount: 423,
		},
	}
}

// Categories lists the browsable top-level categories.
func Categories() []string {
	return []string{
		"Electronics",
		"Fashion",
		"Home & Garden",
		"Sports",
		"Books",
		"Toys",
		"Beauty",
		"Automotive",
	}
}

// Products returns the static product dataset. Prices are in cents.
func Products() []catalog.Product {
	op := func(cents int64) *int64 { return &cents }
	ts := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return t
	}

	return []catalog.Product{
		{
			ID:            ProductID(1),
			Slug:          "wireless-bluetooth-headphones",
			Name:          "Wireless Bluetooth Headphones",
			Description:   "Premium wireless headphones with active noise cancellation, 30-hour battery life, and comfortable over-ear design.",
			Price:         19999,
			OriginalPrice: op(24999),
			Category:      "Electronics",
			Subcategory:   "Audio",
			VendorID:      "v1",
			Images: []string{
				"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=600&h=600&fit=crop",
				"https://images.unsplash.com/photo-1484704849700-f032a568e944?w=600&h=600&fit=crop",
				"https://images.unsplash.com/photo-1546435770-a3e426bf472b?w=600&h=600&fit=crop",
			},
			Stock:     45,
			Status:    catalog.StatusActive,
			CreatedAt: ts("2024-01-15T10:30:00Z"),
			UpdatedAt: ts("2024-01-20T14:45:00Z"),
			SKU:       "WBH-001",
			Tags:      []string{"wireless", "bluetooth", "noise-cancelling"},
			Specifications: map[string]string{
				"Battery Life": "30 hours",
				"Driver Size":  "40mm",
				"Connectivity": "Bluetooth 5.2",
				"Weight":       "250g",
			},
		},
		{
			ID:          ProductID(2),
			Slug:        "smart-fitness-watch",
			Name:        "Smart Fitness Watch",
			Description: "Advanced fitness tracker with heart rate monitoring, GPS, and water resistance up to 50m.",
			Price:       29999,
			Category:    "Electronics",
			Subcategory: "Wearables",
			VendorID:    "v1",
			Images: []string{
				"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=600&h=600&fit=crop",
				"https://images.unsplash.com/photo-1434494878577-86c23bcb06b9?w=600&h=600&fit=crop",
			},
			Stock:     32,
			Status:    catalog.StatusActive,
			CreatedAt: ts("2024-01-10T09:00:00Z"),
			UpdatedAt: ts("2024-01-18T11:20:00Z"),
			SKU:       "SFW-002",
			Tags:      []string{"fitness", "smartwatch", "gps"},
			Specifications: map[string]string{
				"Display":          "1.4\" AMOLED",
				"Water Resistance": "50m",
				"Battery Life":     "7 days",
				"Sensors":          "Heart rate, SpO2, GPS",
			},
		},
		{
			ID:            ProductID(3),
			Slug:          "cotton-casual-shirt",
			Name:          "Premium Cotton Casual Shirt",
			Description:   "Comfortable 100% organic cotton shirt, perfect for casual and semi-formal occasions.",
			Price:         5999,
			OriginalPrice: op(7999),
			Category:      "Fashion",
			Subcategory:   "Shirts",
			VendorID:      "v2",
			Images: []string{
				"https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=600&h=600&fit=crop",
				"https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf?w=600&h=600&fit=crop",
			},
			Stock:     120,
			Status:    catalog.StatusActive,
			CreatedAt: ts("2024-01-12T08:15:00Z"),
			UpdatedAt: ts("2024-01-19T16:30:00Z"),
			SKU:       "PCS-003",
			Tags:      []string{"cotton", "casual", "organic"},
			Specifications: map[string]string{
				"Material": "100% Organic Cotton",
				"Fit":      "Regular",
				"Care":     "Machine wash cold",
				"Origin":   "India",
			},
		},
		{
			ID:          ProductID(4),
			Slug:        "leather-crossbody-bag",
			Name:        "Leather Crossbody Bag",
			Description: "Elegant genuine leather crossbody bag with adjustable strap and multiple compartments.",
			Price:       12999,
			Category:    "Fashion",
			Subcategory: "Bags",
			VendorID:    "v2",
			Images: []string{
				"https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=600&h=600&fit=crop",
				"https://images.unsplash.com/photo-1590874103328-eac38a683ce7?w=600&h=600&fit=crop",
			},
			Stock:     28,
			Status:    catalog.StatusPending,
			CreatedAt: ts("2024-01-14T12:00:00Z"),
			UpdatedAt: ts("2024-01-14T12:00:00Z"),
			SKU:       "LCB-004",
			Tags:      []string{"leather", "crossbody", "elegant"},
			Specifications: map[string]string{
				"Material":   "Genuine Leather",
				"Dimensions": "25cm x 18cm x 8cm",
				"Strap":      "Adjustable",
				"Closure":    "Magnetic snap",
			},
		},
		{
			ID:          ProductID(5),
			Slug:        "ceramic-dinner-set",
			Name:        "Ceramic Dinner Set (16 pieces)",
			Description: "Beautiful hand-crafted ceramic dinner set including plates, bowls, and mugs for 4 people.",
			Price:       8999,
			Category:    "Home & Garden",
			Subcategory: "Kitchen",
			VendorID:    "v3",
			Images: []string{
				"https://images.unsplash.com/photo-1565538810643-b5bdb714032a?w=600&h=600&fit=crop",
				"https://images.unsplash.com/photo-1578749556568-bc2c40e68b61?w=600&h=600&fit=crop",
			},
			Stock:     55,
			Status:    catalog.StatusActive,
			CreatedAt: ts("2024-01-08T14:30:00Z"),
			UpdatedAt: ts("2024-01-17T10:15:00Z"),
			SKU:       "CDS-005",
			Tags:      []string{"ceramic", "dinner", "handcrafted"},
			Specifications: map[string]string{
				"Pieces":          "16",
				"Material":        "Ceramic",
				"Dishwasher Safe": "Yes",
				"Microwave Safe":  "Yes",
			},
		},
		{
			ID:          ProductID(6),
			Slug:        "indoor-plant-collection",
			Name:        "Indoor Plant Collection",
			Description: "Set of 3 low-maintenance indoor plants perfect for home or office decoration.",
			Price:       4599,
			Category:    "Home & Garden",
			Subcategory: "Plants",
			VendorID:    "v3",
			Images: []string{
				"https://images.unsplash.com/photo-1459411552884-841db9b3cc2a?w=600&h=600&fit=crop",
				"https://images.unsplash.com/photo-1463320726281-696a485928c7?w=600&h=600&fit=crop",
			},
			Stock:     40,
			Status:    catalog.StatusActive,
			CreatedAt: ts("2024-01-11T11:45:00Z"),
			UpdatedAt: ts("2024-01-16T09:00:00Z"),
			SKU:       "IPC-006",
			Tags:      []string{"plants", "indoor", "low-maintenance"},
			Specifications: map[string]string{
				"Number of Plants": "3",
				"Pot Size":         "4 inch",
				"Light":            "Low to medium",
				"Watering":         "Weekly",
			},
		},
		{
			ID:          ProductID(7),
			Slug:        "yoga-mat-premium",
			Name:        "Premium Yoga Mat",
			Description: "Extra thick non-slip yoga mat with carrying strap, perfect for all types of yoga.",
			Price:       3999,
			Category:    "Sports",
			Subcategory: "Yoga",
			VendorID:    "v1",
			Images: []string{
				"https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=600&h=600&fit=crop",
			},
			Stock:     75,
			Status:    catalog.StatusActive,
			CreatedAt: ts("2024-01-09T07:30:00Z"),
			UpdatedAt: ts("2024-01-15T13:45:00Z"),
			SKU:       "YMP-007",
			Tags:      []string{"yoga", "fitness", "non-slip"},
			Specifications: map[string]string{
				"Thickness":  "6mm",
				"Material":   "TPE",
				"Dimensions": "183cm x 61cm",
				"Weight":     "1.2kg",
			},
		},
		{
			ID:            ProductID(8),
			Slug:          "running-shoes-pro",
			Name:          "Professional Running Shoes",
			Description:   "Lightweight running shoes with superior cushioning and breathable mesh upper.",
			Price:         14999,
			OriginalPrice: op(18999),
			Category:      "Sports",
			Subcategory:   "Footwear",
			VendorID:      "v2",
			Images: []string{
				"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=600&h=600&fit=crop",
				"https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?w=600&h=600&fit=crop",
			},
			Stock:     0,
			Status:    catalog.StatusActive,
			CreatedAt: ts("2024-01-07T16:00:00Z"),
			UpdatedAt: ts("2024-01-20T08:30:00Z"),
			SKU:       "RSP-008",
			Tags:      []string{"running", "shoes", "lightweight"},
			Specifications: map[string]string{
				"Upper":      "Breathable Mesh",
				"Sole":       "Rubber",
				"Cushioning": "Foam",
				"Weight":     "280g",
			},
		},
		{
			ID:          ProductID(9),
			Slug:        "organic-skincare-set",
			Name:        "Organic Skincare Set",
			Description: "Complete skincare routine with cleanser, toner, serum, and moisturizer - all organic.",
			Price:       7999,
			Category:    "Beauty",
			Subcategory: "Skincare",
			VendorID:    "v3",
			Images: []string{
				"https://images.unsplash.com/photo-1556228720-195a672e8a03?w=600&h=600&fit=crop",
			},
			Stock:     60,
			Status:    catalog.StatusFlagged,
			CreatedAt: ts("2024-01-13T10:00:00Z"),
			UpdatedAt: ts("2024-01-18T14:20:00Z"),
			SKU:       "OSS-009",
			Tags:      []string{"organic", "skincare", "natural"},
			Specifications: map[string]string{
				"Items":        "4 products",
				"Skin Type":    "All types",
				"Cruelty Free": "Yes",
				"Paraben Free": "Yes",
			},
		},
		{
			ID:          ProductID(10),
			Slug:        "portable-bluetooth-speaker",
			Name:        "Portable Bluetooth Speaker",
			Description: "Compact waterproof speaker with 360° sound and 12-hour playtime.",
			Price:       6999,
			Category:    "Electronics",
			Subcategory: "Audio",
			VendorID:    "v1",
			Images: []string{
				"https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=600&h=600&fit=crop",
			},
			Stock:     88,
			Status:    catalog.StatusInactive,
			CreatedAt: ts("2024-01-06T09:30:00Z"),
			UpdatedAt: ts("2024-01-19T11:00:00Z"),
			SKU:       "PBS-010",
			Tags:      []string{"bluetooth", "speaker", "waterproof"},
			Specifications: map[string]string{
				"Battery Life":     "12 hours",
				"Water Resistance": "IPX7",
				"Bluetooth":        "5.0",
				"Weight":           "540g",
			},
		},
		{
			ID:          ProductID(11),
			Slug:        "desk-lamp-led",
			Name:        "LED Desk Lamp with Wireless Charger",
			Description: "Modern LED desk lamp with adjustable brightness, color temperature, and built-in wireless charging pad.",
			Price:       5499,
			Category:    "Home & Garden",
			Subcategory: "Lighting",
			VendorID:    "v3",
			Images: []string{
				"https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=600&h=600&fit=crop",
			},
			Stock:     42,
			Status:    catalog.StatusActive,
			CreatedAt: ts("2024-01-05T13:15:00Z"),
			UpdatedAt: ts("2024-01-14T17:45:00Z"),
			SKU:       "DLL-011",
			Tags:      []string{"led", "desk lamp", "wireless charging"},
			Specifications: map[string]string{
				"Power":             "10W",
				"Color Temp":        "2700K-6500K",
				"Wireless Charging": "15W",
				"Material":          "Aluminum",
			},
		},
		{
			ID:          ProductID(12),
			Slug:        "bestseller-book-collection",
			Name:        "Bestseller Book Collection 2024",
			Description: "Curated collection of top 5 bestselling fiction books of 2024.",
			Price:       4999,
			Category:    "Books",
			Subcategory: "Fiction",
			VendorID:    "v2",
			Images: []string{
				"https://images.unsplash.com/photo-1512820790803-83ca734da794?w=600&h=600&fit=crop",
			},
			Stock:     25,
			Status:    catalog.StatusPending,
			CreatedAt: ts("2024-01-04T15:00:00Z"),
			UpdatedAt: ts("2024-01-04T15:00:00Z"),
			SKU:       "BBC-012",
			Tags:      []string{"books", "fiction", "bestseller"},
			Specifications: map[string]string{
				"Number of Books": "5",
				"Format":          "Paperback",
				"Language":        "English",
				"Total Pages":     "~1500",
			},
		},
	}
}

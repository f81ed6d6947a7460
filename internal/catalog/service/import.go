package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/auth"
	"github.com/nstepura/matmarket/internal/catalog"
	caterrors "github.com/nstepura/matmarket/internal/catalog/errors"
)

// Import report statuses.
const (
	ImportCompleted = "completed"
	ImportPartial   = "partial"
	ImportFailed    = "failed"
)

// ImportRow is one pre-parsed spreadsheet row of a bulk upload. All cells
// arrive as strings and are validated here, at the boundary.
type ImportRow struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Stock    string `json:"stock"`
}

// ImportRowResult reports the outcome of a single upload row.
type ImportRowResult struct {
	Row       int      `json:"row"`
	SKU       string   `json:"sku,omitempty"`
	ProductID string   `json:"product_id,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// ImportReportDto summarizes a bulk upload run.
type ImportReportDto struct {
	TotalRows    int               `json:"total_rows"`
	SuccessCount int               `json:"success_count"`
	ErrorCount   int               `json:"error_count"`
	Status       string            `json:"status"`
	Rows         []ImportRowResult `json:"rows"`
}

// Import validates each row and creates the valid ones as pending listings
// owned by the calling vendor. A bad row never aborts the run; it is
// recorded in the report and skipped.
func (s *Service) Import(ctx context.Context, rows []ImportRow) (*ImportReportDto, error) {
	caller := auth.FromContext(ctx)
	if caller.Role != catalog.RoleVendor || caller.VendorID == "" {
		return nil, caterrors.ErrAccessDenied
	}

	report := &ImportReportDto{
		TotalRows: len(rows),
		Rows:      make([]ImportRowResult, 0, len(rows)),
	}
	for i, row := range rows {
		result := ImportRowResult{Row: i + 1, SKU: strings.TrimSpace(row.SKU)}

		product, errs := parseImportRow(row)
		if len(errs) > 0 {
			result.Errors = errs
			report.ErrorCount++
			report.Rows = append(report.Rows, result)
			continue
		}

		product.ID = uuid.New()
		product.VendorID = caller.VendorID
		product.Status = catalog.StatusPending
		created, err := s.repository.Create(ctx, *product)
		if err != nil {
			return nil, fmt.Errorf("failed to create product from row %d: %w", i+1, err)
		}

		result.ProductID = created.ID.String()
		report.SuccessCount++
		report.Rows = append(report.Rows, result)
	}

	switch {
	case report.ErrorCount == 0:
		report.Status = ImportCompleted
	case report.SuccessCount == 0:
		report.Status = ImportFailed
	default:
		report.Status = ImportPartial
	}
	return report, nil
}

// parseImportRow checks the required cells and converts the numeric ones.
// It collects every problem in the row rather than stopping at the first.
func parseImportRow(row ImportRow) (*catalog.Product, []string) {
	var errs []string

	name := strings.TrimSpace(row.Name)
	if name == "" {
		errs = append(errs, "missing name")
	}
	sku := strings.TrimSpace(row.SKU)
	if sku == "" {
		errs = append(errs, "missing sku")
	}
	category := strings.TrimSpace(row.Category)
	if category == "" {
		errs = append(errs, "missing category")
	}

	price, err := strconv.ParseInt(strings.TrimSpace(row.Price), 10, 64)
	if err != nil || price < 0 {
		errs = append(errs, "invalid price")
	}
	stock, err := strconv.ParseInt(strings.TrimSpace(row.Stock), 10, 32)
	if err != nil || stock < 0 {
		errs = append(errs, "invalid stock")
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &catalog.Product{
		Name:     name,
		SKU:      sku,
		Category: category,
		Price:    price,
		Stock:    int32(stock),
	}, nil
}

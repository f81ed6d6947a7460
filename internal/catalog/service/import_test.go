package service

import (
	"context"
	"testing"

	"github.com/nstepura/matmarket/internal/catalog"
	caterrors "github.com/nstepura/matmarket/internal/catalog/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CatalogService_Import(t *testing.T) {
	vendor := ctxFor(catalog.RoleVendor, "v1")

	validRow := ImportRow{
		Name:     "PVC Pipe 50mm",
		SKU:      "PVC-50",
		Price:    "1599",
		Category: "Plumbing",
		Stock:    "300",
	}

	t.Run("Success - all rows valid", func(t *testing.T) {
		service := seededService()
		report, err := service.Import(vendor, []ImportRow{
			validRow,
			{Name: "Brass Valve", SKU: "BV-20", Price: "899", Category: "Plumbing", Stock: "150"},
		})
		require.NoError(t, err)
		assert.Equal(t, ImportCompleted, report.Status)
		assert.Equal(t, 2, report.TotalRows)
		assert.Equal(t, 2, report.SuccessCount)
		assert.Equal(t, 0, report.ErrorCount)
		require.Len(t, report.Rows, 2)
		assert.NotEmpty(t, report.Rows[0].ProductID)
	})

	t.Run("Imported rows become pending listings of the caller", func(t *testing.T) {
		service := seededService()
		report, err := service.Import(vendor, []ImportRow{validRow})
		require.NoError(t, err)
		require.Equal(t, 1, report.SuccessCount)

		list, err := service.List(ctxFor(catalog.RoleAdmin, ""), ListQuery{
			Search: "PVC Pipe", Page: 1, PageSize: 12,
		})
		require.NoError(t, err)
		require.Len(t, list.Products, 1)
		assert.Equal(t, "pending", list.Products[0].Status)
		assert.Equal(t, "v1", list.Products[0].VendorID)
	})

	t.Run("Partial - bad rows are reported and skipped", func(t *testing.T) {
		service := seededService()
		report, err := service.Import(vendor, []ImportRow{
			validRow,
			{Name: "", SKU: "X-1", Price: "abc", Category: "Plumbing", Stock: "10"},
			{Name: "Copper Elbow", SKU: "", Price: "499", Category: "", Stock: "-5"},
		})
		require.NoError(t, err)
		assert.Equal(t, ImportPartial, report.Status)
		assert.Equal(t, 3, report.TotalRows)
		assert.Equal(t, 1, report.SuccessCount)
		assert.Equal(t, 2, report.ErrorCount)

		assert.ElementsMatch(t, []string{"missing name", "invalid price"}, report.Rows[1].Errors)
		assert.ElementsMatch(t, []string{"missing sku", "missing category", "invalid stock"}, report.Rows[2].Errors)
	})

	t.Run("Failed - nothing imported", func(t *testing.T) {
		service := seededService()
		report, err := service.Import(vendor, []ImportRow{
			{Name: "", SKU: "", Price: "", Category: "", Stock: ""},
		})
		require.NoError(t, err)
		assert.Equal(t, ImportFailed, report.Status)
		assert.Equal(t, 0, report.SuccessCount)
		assert.Equal(t, 1, report.ErrorCount)
	})

	t.Run("Error - admin cannot import", func(t *testing.T) {
		service := seededService()
		report, err := service.Import(ctxFor(catalog.RoleAdmin, ""), []ImportRow{validRow})
		assert.ErrorIs(t, err, caterrors.ErrAccessDenied)
		assert.Nil(t, report)
	})

	t.Run("Error - public cannot import", func(t *testing.T) {
		service := seededService()
		report, err := service.Import(context.Background(), []ImportRow{validRow})
		assert.ErrorIs(t, err, caterrors.ErrAccessDenied)
		assert.Nil(t, report)
	})
}

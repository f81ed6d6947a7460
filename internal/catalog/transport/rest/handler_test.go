package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/auth"
	"github.com/nstepura/matmarket/internal/catalog"
	caterrors "github.com/nstepura/matmarket/internal/catalog/errors"
	"github.com/nstepura/matmarket/internal/catalog/service"
	"github.com/stretchr/testify/assert"
)

// mockCatalogService is a mock implementation of the CatalogService interface
type mockCatalogService struct {
	product *service.ProductDto
	list    *service.ProductListDto
	queue   *service.ModerationQueueDto
	bulk    *service.BulkResultDto
	report  *service.ImportReportDto
	vendors    []service.VendorDto
	vendor     *service.VendorDto
	categories []string
	query      service.ListQuery
	error      error
}

func (m *mockCatalogService) List(_ context.Context, q service.ListQuery) (*service.ProductListDto, error) {
	m.query = q
	if m.error != nil {
		return nil, m.error
	}
	return m.list, nil
}

func (m *mockCatalogService) FindByID(_ context.Context, _ uuid.UUID) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockCatalogService) FindBySlug(_ context.Context, _ string) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockCatalogService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockCatalogService) Update(_ context.Context, _ uuid.UUID, _ service.ProductUpdateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockCatalogService) Delete(_ context.Context, _ uuid.UUID) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockCatalogService) Approve(_ context.Context, _ uuid.UUID) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockCatalogService) Reject(_ context.Context, _ uuid.UUID) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockCatalogService) Flag(_ context.Context, _ uuid.UUID) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockCatalogService) ModerationQueue(_ context.Context) (*service.ModerationQueueDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.queue, nil
}

func (m *mockCatalogService) BulkDelete(_ context.Context, _ []uuid.UUID) (*service.BulkResultDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.bulk, nil
}

func (m *mockCatalogService) BulkUpdateStatus(_ context.Context, _ []uuid.UUID, _ catalog.Status) (*service.BulkResultDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.bulk, nil
}

func (m *mockCatalogService) BulkUpdateCategory(_ context.Context, _ []uuid.UUID, _ string) (*service.BulkResultDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.bulk, nil
}

func (m *mockCatalogService) Import(_ context.Context, _ []service.ImportRow) (*service.ImportReportDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.report, nil
}

func (m *mockCatalogService) ListVendors(_ context.Context) ([]service.VendorDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.vendors, nil
}

func (m *mockCatalogService) FindVendorByID(_ context.Context, _ string) (*service.VendorDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.vendor, nil
}

func (m *mockCatalogService) Categories(_ context.Context) []string {
	return m.categories
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func newTestRouter(svc service.CatalogService) *chi.Mux {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	mux := chi.NewRouter()
	NewHandler(svc, logger).RegisterRoutes(mux)
	return mux
}

func Test_CatalogAPI_FindByID(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name         string
		mockService  mockCatalogService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product found",
			mockService: mockCatalogService{
				product: &service.ProductDto{ID: mockID.String(), Name: "Wireless Bluetooth Headphones", Status: "active"},
			},
			productID:    mockID.String(),
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - invalid id",
			mockService:  mockCatalogService{},
			productID:    "123-invalid-id",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: 123-invalid-id"}),
		},
		{
			name: "Error - product not found",
			mockService: mockCatalogService{
				error: caterrors.ErrProductNotFound,
			},
			productID:    mockID.String(),
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID " + mockID.String() + " not found"}),
		},
		{
			name: "Error - service error",
			mockService: mockCatalogService{
				error: errors.New("service unavailable"),
			},
			productID:    mockID.String(),
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve product with ID " + mockID.String()}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+tc.productID, nil)
			rec := httptest.NewRecorder()

			// when
			mux.ServeHTTP(rec, req)

			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			}
		})
	}
}

func Test_CatalogAPI_List(t *testing.T) {
	t.Run("Success - query parameters are forwarded", func(t *testing.T) {
		// given
		mock := mockCatalogService{
			list: &service.ProductListDto{Products: []service.ProductDto{}, Page: 2, TotalPages: 3, TotalItems: 30},
		}
		mux := newTestRouter(&mock)
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/products?search=pipe&category=Plumbing&vendor=v1&price_min=100&price_max=5000&in_stock=true&status=active&sort=price-low&page=2&size=10", nil)
		rec := httptest.NewRecorder()

		// when
		mux.ServeHTTP(rec, req)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pipe", mock.query.Search)
		assert.Equal(t, "Plumbing", mock.query.Category)
		assert.Equal(t, "v1", mock.query.VendorID)
		assert.Equal(t, int64(100), mock.query.PriceMin)
		assert.Equal(t, int64(5000), mock.query.PriceMax)
		assert.True(t, mock.query.InStock)
		assert.Equal(t, catalog.StatusActive, mock.query.Status)
		assert.Equal(t, 2, mock.query.Page)
		assert.Equal(t, 10, mock.query.PageSize)
	})

	t.Run("Defaults - first page of twelve", func(t *testing.T) {
		mock := mockCatalogService{list: &service.ProductListDto{Products: []service.ProductDto{}}}
		mux := newTestRouter(&mock)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, mock.query.Page)
		assert.Equal(t, DefaultPageSize, mock.query.PageSize)
	})

	t.Run("Error - unknown status", func(t *testing.T) {
		mux := newTestRouter(&mockCatalogService{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?status=archived", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Error - negative price bound", func(t *testing.T) {
		mux := newTestRouter(&mockCatalogService{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?price_min=-5", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_CatalogAPI_Create(t *testing.T) {
	mockID := uuid.New()
	testCases := []struct {
		name         string
		mockService  mockCatalogService
		body         string
		headers      map[string]string
		expectedCode int
	}{
		{
			name: "Success - product created",
			mockService: mockCatalogService{
				product: &service.ProductDto{ID: mockID.String(), Name: "Copper Pipe", Status: "pending"},
			},
			body:         `{"name":"Copper Pipe","price":2599,"category":"Plumbing","sku":"CP-10","stock":100}`,
			headers:      map[string]string{auth.HeaderRole: "vendor", auth.HeaderVendor: "v1"},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Error - missing required fields",
			mockService:  mockCatalogService{},
			body:         `{"name":"Copper Pipe"}`,
			headers:      map[string]string{auth.HeaderRole: "vendor", auth.HeaderVendor: "v1"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - malformed body",
			mockService:  mockCatalogService{},
			body:         `{not json`,
			headers:      map[string]string{auth.HeaderRole: "vendor", auth.HeaderVendor: "v1"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Error - access denied",
			mockService: mockCatalogService{
				error: caterrors.ErrAccessDenied,
			},
			body:         `{"name":"Copper Pipe","price":2599,"category":"Plumbing","sku":"CP-10","stock":100}`,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Error - vendor role without vendor id",
			mockService:  mockCatalogService{},
			body:         `{"name":"Copper Pipe","price":2599,"category":"Plumbing","sku":"CP-10","stock":100}`,
			headers:      map[string]string{auth.HeaderRole: "vendor"},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(&tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(tc.body))
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			// when
			mux.ServeHTTP(rec, req)

			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_CatalogAPI_Moderation(t *testing.T) {
	mockID := uuid.New()

	t.Run("Success - approve", func(t *testing.T) {
		mock := mockCatalogService{product: &service.ProductDto{ID: mockID.String(), Status: "active"}}
		mux := newTestRouter(&mock)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+mockID.String()+"/approve", nil)
		req.Header.Set(auth.HeaderRole, "admin")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Error - invalid transition maps to conflict", func(t *testing.T) {
		mock := mockCatalogService{error: caterrors.ErrInvalidTransition}
		mux := newTestRouter(&mock)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+mockID.String()+"/reject", nil)
		req.Header.Set(auth.HeaderRole, "admin")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Error - access denied maps to forbidden", func(t *testing.T) {
		mock := mockCatalogService{error: caterrors.ErrAccessDenied}
		mux := newTestRouter(&mock)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+mockID.String()+"/flag", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func Test_CatalogAPI_Bulk(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()

	t.Run("Success - bulk status", func(t *testing.T) {
		mock := mockCatalogService{bulk: &service.BulkResultDto{Applied: []string{id1.String()}, Missing: []string{id2.String()}}}
		mux := newTestRouter(&mock)
		body := toJSON(t, map[string]any{"ids": []string{id1.String(), id2.String()}, "status": "inactive"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/bulk/status", strings.NewReader(body))
		req.Header.Set(auth.HeaderRole, "admin")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, toJSON(t, mock.bulk), rec.Body.String())
	})

	t.Run("Error - missing status", func(t *testing.T) {
		mux := newTestRouter(&mockCatalogService{})
		body := toJSON(t, map[string]any{"ids": []string{id1.String()}})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/bulk/status", strings.NewReader(body))
		req.Header.Set(auth.HeaderRole, "admin")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Error - empty id list", func(t *testing.T) {
		mux := newTestRouter(&mockCatalogService{})
		body := toJSON(t, map[string]any{"ids": []string{}})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/bulk/delete", strings.NewReader(body))
		req.Header.Set(auth.HeaderRole, "admin")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_CatalogAPI_Import(t *testing.T) {
	t.Run("Success - report returned", func(t *testing.T) {
		mock := mockCatalogService{report: &service.ImportReportDto{TotalRows: 1, SuccessCount: 1, Status: service.ImportCompleted}}
		mux := newTestRouter(&mock)
		body := `{"rows":[{"name":"PVC Pipe","sku":"PVC-50","price":"1599","category":"Plumbing","stock":"300"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", strings.NewReader(body))
		req.Header.Set(auth.HeaderRole, "vendor")
		req.Header.Set(auth.HeaderVendor, "v1")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, toJSON(t, mock.report), rec.Body.String())
	})

	t.Run("Error - empty rows", func(t *testing.T) {
		mux := newTestRouter(&mockCatalogService{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", strings.NewReader(`{"rows":[]}`))
		req.Header.Set(auth.HeaderRole, "vendor")
		req.Header.Set(auth.HeaderVendor, "v1")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_CatalogAPI_Vendors(t *testing.T) {
	t.Run("Success - vendor list", func(t *testing.T) {
		mock := mockCatalogService{vendors: []service.VendorDto{{ID: "v1", Name: "TechStore Pro"}}}
		mux := newTestRouter(&mock)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, toJSON(t, mock.vendors), rec.Body.String())
	})

	t.Run("Error - vendor not found", func(t *testing.T) {
		mock := mockCatalogService{error: caterrors.ErrVendorNotFound}
		mux := newTestRouter(&mock)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors/v99", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_CatalogAPI_Categories(t *testing.T) {
	mock := mockCatalogService{categories: []string{"Electronics", "Fashion"}}
	mux := newTestRouter(&mock)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, toJSON(t, mock.categories), rec.Body.String())
}

func Test_CatalogAPI_HealthCheck(t *testing.T) {
	mux := newTestRouter(&mockCatalogService{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

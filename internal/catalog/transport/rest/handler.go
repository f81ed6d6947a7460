// Package rest provides HTTP handlers for catalog operations.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/auth"
	"github.com/nstepura/matmarket/internal/catalog"
	caterrors "github.com/nstepura/matmarket/internal/catalog/errors"
	"github.com/nstepura/matmarket/internal/catalog/query"
	"github.com/nstepura/matmarket/internal/catalog/service"
	"github.com/nstepura/matmarket/pkg/web"
)

// DefaultPageSize is the number of products per page when the request
// does not say otherwise.
const DefaultPageSize = 12

type Handler struct {
	service  service.CatalogService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the catalog API with the provided service.
func NewHandler(service service.CatalogService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Route("/api/v1/products", func(r chi.Router) {
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Post("/import", h.Import)

			r.Route("/bulk", func(r chi.Router) {
				r.Post("/delete", h.BulkDelete)
				r.Post("/status", h.BulkStatus)
				r.Post("/category", h.BulkCategory)
			})

			r.Get("/slug/{slug}", h.FindBySlug)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindByID)
				r.Put("/", h.Update)
				r.Delete("/", h.Delete)
				r.Post("/approve", h.Approve)
				r.Post("/reject", h.Reject)
				r.Post("/flag", h.Flag)
			})
		})
		r.Get("/api/v1/moderation/queue", h.ModerationQueue)
		r.Get("/api/v1/categories", h.Categories)
		r.Route("/api/v1/vendors", func(r chi.Router) {
			r.Get("/", h.ListVendors)
			r.Get("/{id}", h.FindVendorByID)
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

// List returns one page of products after filtering and sorting.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	page, ok := web.ParseOptionalGte(r, w, mLogger, "page", 1, 1)
	if !ok {
		return
	}
	size, ok := web.ParseOptionalGte(r, w, mLogger, "size", 1, DefaultPageSize)
	if !ok {
		return
	}
	priceMin, ok := parseOptionalPrice(r, w, mLogger, "price_min")
	if !ok {
		return
	}
	priceMax, ok := parseOptionalPrice(r, w, mLogger, "price_max")
	if !ok {
		return
	}
	params := r.URL.Query()
	status := catalog.Status(params.Get("status"))
	if status != "" && !status.Valid() {
		web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Unknown status: %s", status))
		return
	}

	q := service.ListQuery{
		Search:   params.Get("search"),
		Category: params.Get("category"),
		VendorID: params.Get("vendor"),
		PriceMin: priceMin,
		PriceMax: priceMax,
		InStock:  params.Get("in_stock") == "true",
		Status:   status,
		SortBy:   query.SortOption(params.Get("sort")),
		Page:     int(page),
		PageSize: int(size),
	}

	mLogger.DebugContext(r.Context(), "Received request to list products", "page", page, "size", size)
	list, err := h.service.List(r.Context(), q)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list.Products))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", slog.String("ID", found.ID))
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindBySlug retrieves a product by its slug.
func (h *Handler) FindBySlug(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	slug := r.PathValue("slug")
	if slug == "" {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Slug is required")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by slug", "slug", slug)
	found, err := h.service.FindBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "slug", slug)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with slug %s not found", slug))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "slug", slug, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with slug %s", slug))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a new product listing.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var productCreateDto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&productCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)
	if err := h.validate.Struct(productCreateDto); err != nil {
		web.RespondValidationError(w, mLogger, err)
		return
	}

	newProduct, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		if errors.Is(err, caterrors.ErrAccessDenied) {
			mLogger.WarnContext(r.Context(), "Access denied to product creation")
			web.RespondError(w, mLogger, http.StatusForbidden, "Access denied")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", slog.String("ID", newProduct.ID))
	web.RespondJSON(w, mLogger, http.StatusCreated, newProduct)
}

// Update merges the provided fields into an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var productUpdateDto service.ProductUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&productUpdateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	if err := h.validate.Struct(productUpdateDto); err != nil {
		web.RespondValidationError(w, mLogger, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, productUpdateDto)
	if err != nil {
		h.respondProductError(w, r, mLogger, err, id, "update")
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", slog.String("ID", updated.ID))
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// Delete soft-deletes a product listing.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondProductError(w, r, mLogger, err, id, "delete")
		return
	}
	mLogger.InfoContext(r.Context(), "Product deactivated successfully", slog.String("ID", deleted.ID))
	web.RespondJSON(w, mLogger, http.StatusOK, deleted)
}

// Approve transitions a product to active.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Approve, "approve")
}

// Reject transitions a product to rejected.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Reject, "reject")
}

// Flag marks a product for review.
func (h *Handler) Flag(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Flag, "flag")
}

// ModerationQueue returns the pending and flagged listings.
func (h *Handler) ModerationQueue(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request for moderation queue")
	queue, err := h.service.ModerationQueue(r.Context())
	if err != nil {
		if errors.Is(err, caterrors.ErrAccessDenied) {
			mLogger.WarnContext(r.Context(), "Access denied to moderation queue")
			web.RespondError(w, mLogger, http.StatusForbidden, "Access denied")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving moderation queue", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch moderation queue")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, queue)
}

// bulkIdsDto is the common request body of the bulk endpoints.
type bulkIdsDto struct {
	IDs      []string `json:"ids"      validate:"required,min=1,dive,uuid"`
	Status   string   `json:"status"   validate:"omitempty,oneof=pending active inactive rejected flagged"`
	Category string   `json:"category" validate:"omitempty,max=100"`
}

// BulkDelete soft-deletes every listed product.
func (h *Handler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, "delete", func(r *http.Request, ids []uuid.UUID, _ bulkIdsDto) (*service.BulkResultDto, error) {
		return h.service.BulkDelete(r.Context(), ids)
	}, nil)
}

// BulkStatus sets the status on every listed product.
func (h *Handler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, "status", func(r *http.Request, ids []uuid.UUID, dto bulkIdsDto) (*service.BulkResultDto, error) {
		return h.service.BulkUpdateStatus(r.Context(), ids, catalog.Status(dto.Status))
	}, func(dto bulkIdsDto) string {
		if dto.Status == "" {
			return "Status is required"
		}
		return ""
	})
}

// BulkCategory moves every listed product to a category.
func (h *Handler) BulkCategory(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, "category", func(r *http.Request, ids []uuid.UUID, dto bulkIdsDto) (*service.BulkResultDto, error) {
		return h.service.BulkUpdateCategory(r.Context(), ids, dto.Category)
	}, func(dto bulkIdsDto) string {
		if dto.Category == "" {
			return "Category is required"
		}
		return ""
	})
}

// Import accepts pre-parsed upload rows and reports the per-row outcome.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var body struct {
		Rows []service.ImportRow `json:"rows" validate:"required,min=1"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		web.RespondValidationError(w, mLogger, err)
		return
	}

	mLogger.DebugContext(r.Context(), "Received import request", "rows", len(body.Rows))
	report, err := h.service.Import(r.Context(), body.Rows)
	if err != nil {
		if errors.Is(err, caterrors.ErrAccessDenied) {
			mLogger.WarnContext(r.Context(), "Access denied to import")
			web.RespondError(w, mLogger, http.StatusForbidden, "Access denied")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error importing products", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to import products")
		return
	}
	mLogger.InfoContext(r.Context(), "Import finished",
		"status", report.Status, "success", report.SuccessCount, "errors", report.ErrorCount)
	web.RespondJSON(w, mLogger, http.StatusOK, report)
}

// ListVendors returns all vendor profiles.
// Categories returns the browsable top-level categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.service.Categories(r.Context()))
}

func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	vendors, err := h.service.ListVendors(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving vendor list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch vendors")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, vendors)
}

// FindVendorByID retrieves a vendor profile.
func (h *Handler) FindVendorByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := r.PathValue("id")
	if id == "" {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Vendor ID is required")
		return
	}

	vendor, err := h.service.FindVendorByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, caterrors.ErrVendorNotFound) {
			mLogger.WarnContext(r.Context(), "Vendor not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Vendor with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving vendor", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve vendor with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, vendor)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, id uuid.UUID) (*service.ProductDto, error), name string) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received moderation request", "action", name, "ID", id)
	updated, err := op(r.Context(), id)
	if err != nil {
		h.respondProductError(w, r, mLogger, err, id, name)
		return
	}
	mLogger.InfoContext(r.Context(), "Moderation applied",
		"action", name, slog.String("ID", updated.ID), "status", updated.Status)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

func (h *Handler) bulk(w http.ResponseWriter, r *http.Request, name string,
	op func(r *http.Request, ids []uuid.UUID, dto bulkIdsDto) (*service.BulkResultDto, error),
	check func(dto bulkIdsDto) string) {
	mLogger := h.loggerWithReqID(r)
	var dto bulkIdsDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		web.RespondValidationError(w, mLogger, err)
		return
	}
	if check != nil {
		if msg := check(dto); msg != "" {
			web.RespondError(w, mLogger, http.StatusBadRequest, msg)
			return
		}
	}

	ids := make([]uuid.UUID, len(dto.IDs))
	for i, raw := range dto.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid ID: %s", raw))
			return
		}
		ids[i] = id
	}

	mLogger.DebugContext(r.Context(), "Received bulk request", "action", name, "count", len(ids))
	result, err := op(r, ids, dto)
	if err != nil {
		if errors.Is(err, caterrors.ErrAccessDenied) {
			mLogger.WarnContext(r.Context(), "Access denied to bulk operation", "action", name)
			web.RespondError(w, mLogger, http.StatusForbidden, "Access denied")
			return
		} else if errors.Is(err, caterrors.ErrInvalidTransition) {
			web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid status")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error applying bulk operation", "action", name, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to apply bulk operation")
		return
	}
	mLogger.InfoContext(r.Context(), "Bulk operation finished",
		"action", name, "applied", len(result.Applied), "missing", len(result.Missing))
	web.RespondJSON(w, mLogger, http.StatusOK, result)
}

// respondProductError maps the catalog sentinel errors onto HTTP statuses.
func (h *Handler) respondProductError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger,
	err error, id uuid.UUID, action string) {
	if errors.Is(err, caterrors.ErrProductNotFound) {
		mLogger.WarnContext(r.Context(), "Product not found", "action", action, "ID", id)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
		return
	} else if errors.Is(err, caterrors.ErrAccessDenied) {
		mLogger.WarnContext(r.Context(), "Access denied to product", "action", action, "ID", id)
		web.RespondError(w, mLogger, http.StatusForbidden, fmt.Sprintf("Access denied to product with ID %s", id))
		return
	} else if errors.Is(err, caterrors.ErrInvalidTransition) {
		mLogger.WarnContext(r.Context(), "Invalid status transition", "action", action, "ID", id)
		web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Invalid status transition for product with ID %s", id))
		return
	}
	mLogger.ErrorContext(r.Context(), "Error handling product request", "action", action, "ID", id, "error", err)
	web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s product with ID %s", action, id))
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	return h.logger.With("request_id", middleware.GetReqID(r.Context()))
}

// parseOptionalPrice reads an optional non-negative int64 query parameter.
func parseOptionalPrice(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (int64, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, true
	}
	price, err := strconv.ParseInt(value, 10, 64)
	if err != nil || price < 0 {
		web.RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return price, true
}

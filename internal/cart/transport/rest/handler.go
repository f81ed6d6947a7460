// Package rest provides HTTP handlers for cart operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/auth"
	carterrors "github.com/nstepura/matmarket/internal/cart/errors"
	"github.com/nstepura/matmarket/internal/cart/service"
	caterrors "github.com/nstepura/matmarket/internal/catalog/errors"
	"github.com/nstepura/matmarket/pkg/web"
)

type Handler struct {
	service  service.CartService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the cart API with the provided service.
func NewHandler(service service.CartService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),

		logger: logger.With("component", "cart_rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the cart.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/items", h.AddItem)
			r.Delete("/", h.Clear)

			r.Route("/items/{id}", func(r chi.Router) {
				r.Put("/", h.UpdateQuantity)
				r.Delete("/", h.RemoveItem)
			})
		})
	})
}

// itemDto is the request body for adding a cart line. Quantity carries no
// validation tag: the service clamps non-positive values to one.
type itemDto struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int32  `json:"quantity"`
}

// Get returns the caller's cart.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := h.userID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.service.Get(r.Context(), userID)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving cart", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// AddItem puts a product into the caller's cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := h.userID(w, r, mLogger)
	if !ok {
		return
	}
	var dto itemDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		web.RespondValidationError(w, mLogger, err)
		return
	}
	productID, err := uuid.Parse(dto.ProductID)
	if err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid ID: %s", dto.ProductID))
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to add cart item",
		"product_id", productID, "quantity", dto.Quantity)
	updated, err := h.service.AddItem(r.Context(), userID, productID, dto.Quantity)
	if err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "product_id", productID)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", productID))
			return
		} else if errors.Is(err, carterrors.ErrProductUnavailable) {
			mLogger.WarnContext(r.Context(), "Product unavailable", "product_id", productID)
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Product with ID %s is unavailable", productID))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error adding cart item", "product_id", productID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to add cart item")
		return
	}
	mLogger.InfoContext(r.Context(), "Cart item added", "product_id", productID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// UpdateQuantity sets the quantity on an existing line. A quantity of zero
// or less removes the line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := h.userID(w, r, mLogger)
	if !ok {
		return
	}
	productID, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var body struct {
		Quantity int32 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to update cart item",
		"product_id", productID, "quantity", body.Quantity)
	updated, err := h.service.UpdateQuantity(r.Context(), userID, productID, body.Quantity)
	if err != nil {
		h.respondCartError(w, r, mLogger, err, productID)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// RemoveItem drops a line from the caller's cart.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := h.userID(w, r, mLogger)
	if !ok {
		return
	}
	productID, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		h.respondCartError(w, r, mLogger, err, productID)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// Clear empties the caller's cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := h.userID(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.Clear(r.Context(), userID)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error clearing cart", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

func (h *Handler) respondCartError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger,
	err error, productID uuid.UUID) {
	if errors.Is(err, carterrors.ErrItemNotFound) {
		mLogger.WarnContext(r.Context(), "Cart item not found", "product_id", productID)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Cart item for product %s not found", productID))
		return
	}
	mLogger.ErrorContext(r.Context(), "Error handling cart request", "product_id", productID, "error", err)
	web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update cart")
}

// userID resolves the calling user from the request context. Carts are
// keyed by user, so an anonymous request cannot have one.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (string, bool) {
	userID := auth.FromContext(r.Context()).UserID
	if userID == "" {
		mLogger.WarnContext(r.Context(), "Missing user ID on cart request")
		web.RespondError(w, mLogger, http.StatusUnauthorized, "User ID is required")
		return "", false
	}
	return userID, true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	return h.logger.With("request_id", middleware.GetReqID(r.Context()))
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
)

// AddCartItemRequest adds a product line to a cart.
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// UpdateCartItemRequest replaces the quantity of a cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func cartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart id")
		return uuid.Nil, false
	}
	return id, true
}

// CreateCartHandler handles POST /api/carts. No body: a fresh empty cart
// is created and returned with its UUID.
func CreateCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCartHandler"
		logger := log.With(slog.String("op", op))

		cart, err := cartService.CreateCart(r.Context())
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, cart)
	}
}

// GetCartHandler handles GET /api/carts/{id}, returning the cart with its
// items and total price.
func GetCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCartHandler"
		logger := log.With(slog.String("op", op))

		id, ok := cartID(w, r)
		if !ok {
			return
		}

		cart, err := cartService.GetCart(r.Context(), id)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, cart)
	}
}

func DeleteCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCartHandler"
		logger := log.With(slog.String("op", op))

		id, ok := cartID(w, r)
		if !ok {
			return
		}

		if err := cartService.DeleteCart(r.Context(), id); err != nil {
			writeServiceError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// AddCartItemHandler handles POST /api/carts/{id}/items. A nonexistent
// product is a validation error, not a 404: nothing is persisted.
func AddCartItemHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddCartItemHandler"
		logger := log.With(slog.String("op", op))

		id, ok := cartID(w, r)
		if !ok {
			return
		}

		var req AddCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		item, err := cartService.AddItem(r.Context(), id, req.ProductID, req.Quantity)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				writeJSON(logger, w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: []string{"ProductID"}})
				return
			}
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, item)
	}
}

// UpdateCartItemHandler handles PATCH /api/carts/{id}/items/{itemID}.
func UpdateCartItemHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCartItemHandler"
		logger := log.With(slog.String("op", op))

		id, ok := cartID(w, r)
		if !ok {
			return
		}
		itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid item id")
			return
		}

		var req UpdateCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		if err := cartService.UpdateItem(r.Context(), id, itemID, req.Quantity); err != nil {
			writeServiceError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteCartItemHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCartItemHandler"
		logger := log.With(slog.String("op", op))

		id, ok := cartID(w, r)
		if !ok {
			return
		}
		itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid item id")
			return
		}

		if err := cartService.RemoveItem(r.Context(), id, itemID); err != nil {
			writeServiceError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

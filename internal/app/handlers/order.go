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

// CreateOrderRequest places an order from a cart.
type CreateOrderRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	CartID string `json:"cart_id" validate:"required,uuid4"`
}

// UpdateOrderRequest changes the order status.
type UpdateOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=pending complete failed"`
}

// CreateOrderHandler handles POST /api/orders. A missing user or cart is
// a validation error: the request referenced something that does not exist
// and nothing was persisted.
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}
		cartUUID, err := uuid.Parse(req.CartID)
		if err != nil {
			writeJSON(logger, w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: []string{"CartID"}})
			return
		}

		order, err := orderService.CreateFromCart(r.Context(), req.UserID, cartUUID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrUserNotFound):
				writeJSON(logger, w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: []string{"UserID"}})
			case errors.Is(err, storage.ErrCartNotFound), errors.Is(err, service.ErrEmptyCart):
				writeJSON(logger, w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: []string{"CartID"}})
			default:
				writeServiceError(logger, w, err)
			}
			return
		}
		writeJSON(logger, w, http.StatusCreated, order)
	}
}

// ListOrdersHandler handles GET /api/orders with an optional ?user_id= filter.
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		var userID *int64
		if raw := r.URL.Query().Get("user_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid user_id")
				return
			}
			userID = &id
		}

		orders, err := orderService.ListOrders(r.Context(), userID)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, orders)
	}
}

func GetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid order id")
			return
		}

		order, err := orderService.GetOrder(r.Context(), id)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, order)
	}
}

func UpdateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid order id")
			return
		}

		var req UpdateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		order, err := orderService.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, order)
	}
}

// DeleteOrderHandler rejects deletion of an order that has a payment (409).
func DeleteOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid order id")
			return
		}

		if err := orderService.DeleteOrder(r.Context(), id); err != nil {
			writeServiceError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

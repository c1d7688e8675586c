package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest opens a payment for an order. The amount is never
// part of the request: it comes from the order total.
type CreatePaymentRequest struct {
	OrderID int64  `json:"order_id" validate:"required,gt=0"`
	Method  string `json:"method" validate:"required,oneof=card cash transfer"`
}

// UpdatePaymentRequest patches the status and/or the amount of a payment.
type UpdatePaymentRequest struct {
	Status *string          `json:"status,omitempty" validate:"omitempty,oneof=pending complete failed"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

func CreatePaymentHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreatePaymentHandler"
		logger := log.With(slog.String("op", op))

		var req CreatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		payment, err := paymentService.CreatePayment(r.Context(), req.OrderID, req.Method)
		if err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				writeJSON(logger, w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: []string{"OrderID"}})
				return
			}
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, payment)
	}
}

func ListPaymentsHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListPaymentsHandler"
		logger := log.With(slog.String("op", op))

		payments, err := paymentService.ListPayments(r.Context())
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, payments)
	}
}

func GetPaymentHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetPaymentHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid payment id")
			return
		}

		payment, err := paymentService.GetPayment(r.Context(), id)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, payment)
	}
}

// UpdatePaymentHandler handles PATCH /api/payments/{id}. A status change
// cascades to the order; an amount change touches only the payment row.
func UpdatePaymentHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdatePaymentHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid payment id")
			return
		}

		var req UpdatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}
		if req.Status == nil && req.Amount == nil {
			writeJSON(logger, w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: []string{"Status", "Amount"}})
			return
		}

		payment, err := paymentService.GetPayment(r.Context(), id)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}

		if req.Amount != nil {
			payment, err = paymentService.UpdateAmount(r.Context(), id, *req.Amount)
			if err != nil {
				writeServiceError(logger, w, err)
				return
			}
		}
		if req.Status != nil {
			payment, err = paymentService.UpdateStatus(r.Context(), id, *req.Status)
			if err != nil {
				writeServiceError(logger, w, err)
				return
			}
		}

		writeJSON(logger, w, http.StatusOK, payment)
	}
}

func DeletePaymentHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeletePaymentHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid payment id")
			return
		}

		if err := paymentService.DeletePayment(r.Context(), id); err != nil {
			writeServiceError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

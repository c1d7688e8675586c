package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
)

// PaymentService manages payments and their reconciliation with orders.
type PaymentService interface {
	// CreatePayment opens a pending payment for an order. The amount is
	// taken from the order total, so the two always reconcile at creation.
	CreatePayment(ctx context.Context, orderID int64, method string) (*models.Payment, error)
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	ListPayments(ctx context.Context) ([]*models.Payment, error)
	// UpdateStatus moves the payment through its lifecycle; completing a
	// payment also completes the order, failing it fails the order.
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Payment, error)
	// UpdateAmount adjusts the payment amount (refunds, corrections). The
	// order total is never touched.
	UpdateAmount(ctx context.Context, id int64, amount decimal.Decimal) (*models.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
}

type paymentService struct {
	log         *slog.Logger
	db          *sql.DB
	orderRepo   storage.OrderStorage
	paymentRepo storage.PaymentStorage
}

func NewPaymentService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage, paymentRepo storage.PaymentStorage) PaymentService {
	return &paymentService{
		log:         log,
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, orderID int64, method string) (*models.Payment, error) {
	const op = "service.PaymentService.CreatePayment"
	logger := s.log.With(slog.String("op", op), slog.Int64("orderID", orderID), slog.String("method", method))
	logger.Info("starting payment transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	// lock the order so its total cannot move under us
	order, err := s.orderRepo.GetOrderByIDTx(ctx, tx, orderID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Warn("order lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payment := &models.Payment{
		OrderID: order.ID,
		Amount:  order.Total,
		Method:  method,
		Status:  models.PaymentStatusPending,
	}
	payment, err = s.paymentRepo.CreatePaymentTx(ctx, tx, payment)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to create payment", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("payment created", slog.Int64("paymentID", payment.ID), slog.String("amount", payment.Amount.String()))
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	const op = "service.PaymentService.GetPayment"

	payment, err := s.paymentRepo.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	const op = "service.PaymentService.ListPayments"

	payments, err := s.paymentRepo.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

func (s *paymentService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Payment, error) {
	const op = "service.PaymentService.UpdateStatus"
	logger := s.log.With(slog.String("op", op), slog.Int64("paymentID", id), slog.String("status", status))

	payment, err := s.paymentRepo.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	if err := s.paymentRepo.UpdatePaymentStatusTx(ctx, tx, id, status); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to update payment status", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// the order mirrors the payment outcome
	var orderStatus string
	switch status {
	case models.PaymentStatusComplete:
		orderStatus = models.OrderStatusComplete
	case models.PaymentStatusFailed:
		orderStatus = models.OrderStatusFailed
	}
	if orderStatus != "" {
		if err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, payment.OrderID, orderStatus); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Error("failed to update order status", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to update order status: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	payment.Status = status
	logger.Info("payment status updated")
	return payment, nil
}

func (s *paymentService) UpdateAmount(ctx context.Context, id int64, amount decimal.Decimal) (*models.Payment, error) {
	const op = "service.PaymentService.UpdateAmount"
	logger := s.log.With(slog.String("op", op), slog.Int64("paymentID", id))

	if err := s.paymentRepo.UpdatePaymentAmount(ctx, id, amount); err != nil {
		logger.Error("failed to update payment amount", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payment, err := s.paymentRepo.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("payment amount updated", slog.String("amount", payment.Amount.String()))
	return payment, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id int64) error {
	const op = "service.PaymentService.DeletePayment"

	if err := s.paymentRepo.DeletePayment(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

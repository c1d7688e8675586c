package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart is returned when an order is placed from a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderPaid blocks deletion of an order that already has a payment.
	ErrOrderPaid = errors.New("order has a payment")
)

// OrderService places and manages orders.
type OrderService interface {
	// CreateFromCart turns a cart into an order: unit prices are snapshot
	// from the catalog, the total is computed server-side and the cart is
	// consumed, all in one transaction.
	CreateFromCart(ctx context.Context, userID int64, cartID uuid.UUID) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, userID *int64) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type orderService struct {
	log         *slog.Logger
	db          *sql.DB
	userRepo    storage.UserStorage
	cartRepo    storage.CartStorage
	orderRepo   storage.OrderStorage
	paymentRepo storage.PaymentStorage
}

func NewOrderService(log *slog.Logger, db *sql.DB, userRepo storage.UserStorage, cartRepo storage.CartStorage, orderRepo storage.OrderStorage, paymentRepo storage.PaymentStorage) OrderService {
	return &orderService{
		log:         log,
		db:          db,
		userRepo:    userRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *orderService) CreateFromCart(ctx context.Context, userID int64, cartID uuid.UUID) (*models.Order, error) {
	const op = "service.OrderService.CreateFromCart"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("cartID", cartID.String()))
	logger.Info("starting order transaction")

	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		logger.Warn("user lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	items, err := s.cartRepo.GetCartItemsTx(ctx, tx, cartID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to load cart items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to load cart items: %w", op, err)
	}
	if len(items) == 0 {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Warn("cart is empty or missing")
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	// total = sum of line unit_price * quantity, never taken from input
	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, ci := range items {
		oi := models.OrderItem{
			ProductID:    ci.ProductID,
			ProductTitle: ci.ProductTitle,
			Quantity:     ci.Quantity,
			UnitPrice:    ci.UnitPrice,
		}
		total = total.Add(oi.LineTotal())
		orderItems = append(orderItems, oi)
	}

	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusPending,
		Total:  total,
	}
	order, err = s.orderRepo.CreateOrderTx(ctx, tx, order)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
		if err := s.orderRepo.CreateOrderItemTx(ctx, tx, &orderItems[i]); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Error("failed to create order item", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to create order item: %w", op, err)
		}
	}
	order.Items = orderItems

	// the cart is consumed by the order
	if err := s.cartRepo.DeleteCartTx(ctx, tx, cartID); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to delete cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to delete cart: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order placed", slog.Int64("orderID", order.ID), slog.String("total", order.Total.String()))
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	const op = "service.OrderService.GetOrder"

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID *int64) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"

	orders, err := s.orderRepo.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	const op = "service.OrderService.UpdateStatus"
	logger := s.log.With(slog.String("op", op), slog.Int64("orderID", id), slog.String("status", status))

	if err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		logger.Error("failed to update order status", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("order status updated")
	return order, nil
}

// DeleteOrder removes an order and its items. An order with a payment is
// kept; delete the payment first.
func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	const op = "service.OrderService.DeleteOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("orderID", id))

	_, err := s.paymentRepo.GetPaymentByOrderID(ctx, id)
	if err == nil {
		logger.Warn("order has a payment, refusing to delete")
		return fmt.Errorf("%s: %w", op, ErrOrderPaid)
	}
	if !errors.Is(err, storage.ErrPaymentNotFound) {
		logger.Error("failed to check payment", slog.Any("error", err))
		return fmt.Errorf("%s: failed to check payment: %w", op, err)
	}

	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		logger.Error("failed to delete order", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("order deleted")
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrPaymentExists is returned when the order already has a payment
	// (UNIQUE on order_id).
	ErrPaymentExists = errors.New("order already has a payment")
)

// PaymentStorage describes persistence for payments.
type PaymentStorage interface {
	// CreatePaymentTx inserts a payment inside a transaction, so the amount
	// reconciliation against the order total is atomic.
	CreatePaymentTx(ctx context.Context, tx *sql.Tx, p *models.Payment) (*models.Payment, error)
	GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error)
	GetPaymentByOrderID(ctx context.Context, orderID int64) (*models.Payment, error)
	ListPayments(ctx context.Context) ([]*models.Payment, error)
	UpdatePaymentStatusTx(ctx context.Context, tx *sql.Tx, id int64, status string) error
	UpdatePaymentAmount(ctx context.Context, id int64, amount decimal.Decimal) error
	DeletePayment(ctx context.Context, id int64) error
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentStorage {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePaymentTx(ctx context.Context, tx *sql.Tx, p *models.Payment) (*models.Payment, error) {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO payments (order_id, amount, method, status, created_at)
		 VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`,
		p.OrderID, p.Amount, p.Method, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation on order_id
				return nil, ErrPaymentExists
			case "23503": // foreign_key_violation
				return nil, ErrOrderNotFound
			}
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return p, nil
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error) {
	p := &models.Payment{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, order_id, amount, method, status, created_at FROM payments WHERE id = $1", id)
	if err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) GetPaymentByOrderID(ctx context.Context, orderID int64) (*models.Payment, error) {
	p := &models.Payment{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, order_id, amount, method, status, created_at FROM payments WHERE order_id = $1", orderID)
	if err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, order_id, amount, method, status, created_at FROM payments ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) UpdatePaymentStatusTx(ctx context.Context, tx *sql.Tx, id int64, status string) error {
	res, err := tx.ExecContext(ctx, "UPDATE payments SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// UpdatePaymentAmount changes only the payment row; the associated order
// total is left untouched.
func (r *paymentRepository) UpdatePaymentAmount(ctx context.Context, id int64, amount decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, "UPDATE payments SET amount = $1 WHERE id = $2", amount, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *paymentRepository) DeletePayment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

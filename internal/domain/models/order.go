package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending  = "pending"
	OrderStatusComplete = "complete"
	OrderStatusFailed   = "failed"
)

// Order is a placed order belonging to exactly one user. Total is computed
// from the line items when the order is created and never accepted from input.
type Order struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"user_id"`
	Status   string          `json:"status"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
	Items    []OrderItem     `json:"items,omitempty"`
}

// OrderItem is one product line of an order. UnitPrice is a snapshot of the
// product price at order time, so later catalog changes do not affect it.
type OrderItem struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	ProductTitle string          `json:"product_title,omitempty"` // filled via JOIN with products
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// LineTotal returns unit_price multiplied by quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

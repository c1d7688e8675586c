package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is an anonymous shopping cart. Identified by UUID so that a cart
// can be handed to a client before any user is known.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartItem `json:"items,omitempty"`
}

// CartItem is a product line inside a cart. One line per product,
// enforced by a UNIQUE(cart_id, product_id) constraint.
type CartItem struct {
	ID           int64           `json:"id"`
	CartID       uuid.UUID       `json:"cart_id"`
	ProductID    int64           `json:"product_id"`
	ProductTitle string          `json:"product_title,omitempty"` // filled via JOIN with products
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
}

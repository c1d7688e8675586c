package models

import "time"

// Review is a customer review attached to a product.
// Reviews are removed together with their product.
type Review struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

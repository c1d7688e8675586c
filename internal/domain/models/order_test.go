package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItem_LineTotal(t *testing.T) {
	item := models.OrderItem{
		UnitPrice: decimal.RequireFromString("49.99"),
		Quantity:  3,
	}
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("149.97")),
		"got %s", item.LineTotal())
}

func TestOrder_JSONRoundTrip(t *testing.T) {
	placed := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	order := models.Order{
		ID:       10,
		UserID:   1,
		Status:   models.OrderStatusPending,
		Total:    decimal.RequireFromString("119.88"),
		PlacedAt: placed,
		Items: []models.OrderItem{
			{ID: 1, OrderID: 10, ProductID: 3, ProductTitle: "Keyboard", Quantity: 2, UnitPrice: decimal.RequireFromString("49.99")},
		},
	}

	buf, err := json.Marshal(order)
	require.NoError(t, err)

	var got models.Order
	require.NoError(t, json.Unmarshal(buf, &got))

	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, order.Status, got.Status)
	assert.True(t, got.Total.Equal(order.Total))
	assert.True(t, got.PlacedAt.Equal(order.PlacedAt))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Keyboard", got.Items[0].ProductTitle)
	assert.True(t, got.Items[0].UnitPrice.Equal(order.Items[0].UnitPrice))
}

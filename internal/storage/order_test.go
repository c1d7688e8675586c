package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateOrderTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), models.OrderStatusPending, decimal.RequireFromString("119.88")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "placed_at"}).AddRow(int64(10), now))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	order, err := repo.CreateOrderTx(context.Background(), tx, &models.Order{
		UserID: 1,
		Status: models.OrderStatusPending,
		Total:  decimal.RequireFromString("119.88"),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), order.ID)
	assert.Equal(t, now, order.PlacedAt)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID_WithItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id, status, total, placed_at FROM orders WHERE id").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total", "placed_at"}).
			AddRow(int64(10), int64(1), models.OrderStatusPending, "119.88", now))
	mock.ExpectQuery("SELECT oi.id, oi.order_id, oi.product_id, p.title, oi.quantity, oi.unit_price").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "title", "quantity", "unit_price"}).
			AddRow(int64(1), int64(10), int64(3), "Keyboard", 2, "49.99").
			AddRow(int64(2), int64(10), int64(5), "Mouse", 1, "19.90"))

	order, err := repo.GetOrderByID(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Keyboard", order.Items[0].ProductTitle)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("119.88")))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	mock.ExpectQuery("SELECT id, user_id, status, total, placed_at FROM orders WHERE id").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total", "placed_at"}))

	order, err := repo.GetOrderByID(context.Background(), 404)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
	assert.Nil(t, order)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_FilterByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id, status, total, placed_at FROM orders WHERE user_id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total", "placed_at"}).
			AddRow(int64(10), int64(1), models.OrderStatusComplete, "10.00", now))

	userID := int64(1)
	orders, err := repo.ListOrders(context.Background(), &userID)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(1), orders[0].UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(models.OrderStatusFailed, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateOrderStatus(context.Background(), 404, models.OrderStatusFailed)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

package service_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	users map[int64]*models.User
	next  int64
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, storage.ErrEmailTaken
		}
	}
	f.next++
	user.ID = f.next
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return storage.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProductRepo struct {
	products map[int64]*models.Product
}

var _ storage.ProductStorage = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*models.Product)}
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.ID = int64(len(f.products) + 1)
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	return f.GetProductByID(ctx, id)
}

func (f *fakeProductRepo) ListProducts(ctx context.Context, collectionID *int64) ([]*models.Product, error) {
	var products []*models.Product
	for _, p := range f.products {
		if collectionID == nil || p.CollectionID == *collectionID {
			products = append(products, p)
		}
	}
	return products, nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, p *models.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return storage.ErrProductNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return storage.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeCartRepo struct {
	carts map[uuid.UUID]*models.Cart
	next  int64
}

var _ storage.CartStorage = (*fakeCartRepo)(nil)

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID]*models.Cart)}
}

func (f *fakeCartRepo) CreateCart(ctx context.Context, c *models.Cart) (*models.Cart, error) {
	f.carts[c.ID] = c
	return c, nil
}

func (f *fakeCartRepo) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	c, ok := f.carts[id]
	if !ok {
		return nil, storage.ErrCartNotFound
	}
	return c, nil
}

func (f *fakeCartRepo) DeleteCart(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.carts[id]; !ok {
		return storage.ErrCartNotFound
	}
	delete(f.carts, id)
	return nil
}

func (f *fakeCartRepo) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	c, ok := f.carts[cartID]
	if !ok {
		return nil, storage.ErrCartNotFound
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			item := c.Items[i]
			return &item, nil
		}
	}
	f.next++
	item := models.CartItem{ID: f.next, CartID: cartID, ProductID: productID, Quantity: quantity}
	c.Items = append(c.Items, item)
	return &item, nil
}

func (f *fakeCartRepo) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error {
	c, ok := f.carts[cartID]
	if !ok {
		return storage.ErrCartItemNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return storage.ErrCartItemNotFound
}

func (f *fakeCartRepo) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	c, ok := f.carts[cartID]
	if !ok {
		return storage.ErrCartItemNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return storage.ErrCartItemNotFound
}

func (f *fakeCartRepo) GetCartItemsTx(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) ([]models.CartItem, error) {
	c, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	return c.Items, nil
}

func (f *fakeCartRepo) DeleteCartTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	return f.DeleteCart(ctx, id)
}

type fakeOrderRepo struct {
	orders map[int64]*models.Order
	next   int64
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*models.Order)}
}

func (f *fakeOrderRepo) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) (*models.Order, error) {
	f.next++
	order.ID = f.next
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) CreateOrderItemTx(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error {
	f.next++
	item.ID = f.next
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) GetOrderByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Order, error) {
	return f.GetOrderByID(ctx, id)
}

func (f *fakeOrderRepo) ListOrders(ctx context.Context, userID *int64) ([]*models.Order, error) {
	var orders []*models.Order
	for _, o := range f.orders {
		if userID == nil || o.UserID == *userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return storage.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) UpdateOrderStatusTx(ctx context.Context, tx *sql.Tx, id int64, status string) error {
	return f.UpdateOrderStatus(ctx, id, status)
}

func (f *fakeOrderRepo) DeleteOrder(ctx context.Context, id int64) error {
	if _, ok := f.orders[id]; !ok {
		return storage.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

type fakePaymentRepo struct {
	payments map[int64]*models.Payment
	next     int64
}

var _ storage.PaymentStorage = (*fakePaymentRepo)(nil)

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[int64]*models.Payment)}
}

func (f *fakePaymentRepo) CreatePaymentTx(ctx context.Context, tx *sql.Tx, p *models.Payment) (*models.Payment, error) {
	for _, existing := range f.payments {
		if existing.OrderID == p.OrderID {
			return nil, storage.ErrPaymentExists
		}
	}
	f.next++
	p.ID = f.next
	f.payments[p.ID] = p
	return p, nil
}

func (f *fakePaymentRepo) GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, storage.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) GetPaymentByOrderID(ctx context.Context, orderID int64) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, storage.ErrPaymentNotFound
}

func (f *fakePaymentRepo) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	var payments []*models.Payment
	for _, p := range f.payments {
		payments = append(payments, p)
	}
	return payments, nil
}

func (f *fakePaymentRepo) UpdatePaymentStatusTx(ctx context.Context, tx *sql.Tx, id int64, status string) error {
	p, ok := f.payments[id]
	if !ok {
		return storage.ErrPaymentNotFound
	}
	p.Status = status
	return nil
}

func (f *fakePaymentRepo) UpdatePaymentAmount(ctx context.Context, id int64, amount decimal.Decimal) error {
	p, ok := f.payments[id]
	if !ok {
		return storage.ErrPaymentNotFound
	}
	p.Amount = amount
	return nil
}

func (f *fakePaymentRepo) DeletePayment(ctx context.Context, id int64) error {
	if _, ok := f.payments[id]; !ok {
		return storage.ErrPaymentNotFound
	}
	delete(f.payments, id)
	return nil
}

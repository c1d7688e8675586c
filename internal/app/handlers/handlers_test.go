package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/linemk/storefront/internal/app/handlers"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()

	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// fakeAuthService returns a fixed token or error.
type fakeAuthService struct {
	token string
	err   error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return f.token, f.err
}

// fakeUserService records the last registration and replays canned errors.
type fakeUserService struct {
	registerErr error
	deleteErr   error
	lastEmail   string
}

func (f *fakeUserService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.lastEmail = email
	return &models.User{
		ID:         1,
		Email:      email,
		Name:       name,
		PassHash:   []byte("secret-hash"),
		Membership: models.MembershipBronze,
	}, nil
}

func (f *fakeUserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) UpdateUser(ctx context.Context, id int64, email, name, membership string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) DeleteUser(ctx context.Context, id int64) error {
	return f.deleteErr
}

// fakeOrderService replays a canned order or error for CreateFromCart.
type fakeOrderService struct {
	order *models.Order
	err   error
}

func (f *fakeOrderService) CreateFromCart(ctx context.Context, userID int64, cartID uuid.UUID) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) ListOrders(ctx context.Context, userID *int64) ([]*models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) DeleteOrder(ctx context.Context, id int64) error {
	return f.err
}

// fakePaymentService replays a canned payment or error.
type fakePaymentService struct {
	payment *models.Payment
	err     error
}

func (f *fakePaymentService) CreatePayment(ctx context.Context, orderID int64, method string) (*models.Payment, error) {
	return f.payment, f.err
}

func (f *fakePaymentService) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	return f.payment, f.err
}

func (f *fakePaymentService) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	return nil, nil
}

func (f *fakePaymentService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Payment, error) {
	return f.payment, f.err
}

func (f *fakePaymentService) UpdateAmount(ctx context.Context, id int64, amount decimal.Decimal) (*models.Payment, error) {
	return f.payment, f.err
}

func (f *fakePaymentService) DeletePayment(ctx context.Context, id int64) error {
	return f.err
}

// fakeProductService replays a canned product or error.
type fakeProductService struct {
	product *models.Product
	err     error
}

func (f *fakeProductService) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	return f.product, f.err
}

func (f *fakeProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return f.product, f.err
}

func (f *fakeProductService) ListProducts(ctx context.Context, collectionID *int64) ([]*models.Product, error) {
	return nil, nil
}

func (f *fakeProductService) UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	return f.product, f.err
}

func (f *fakeProductService) DeleteProduct(ctx context.Context, id int64) error {
	return f.err
}

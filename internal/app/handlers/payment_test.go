package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/storefront/internal/app/handlers"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestCreatePaymentHandler_OrderMissing(t *testing.T) {
	svc := &fakePaymentService{err: fmt.Errorf("service.PaymentService.CreatePayment: %w", storage.ErrOrderNotFound)}
	handler := handlers.CreatePaymentHandler(testLogger(), svc)

	rec := postJSON(t, handler, "/api/payments", handlers.CreatePaymentRequest{
		OrderID: 404,
		Method:  models.PaymentMethodCard,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"OrderID"}, decodeError(t, rec).Fields)
}

func TestCreatePaymentHandler_AlreadyExists(t *testing.T) {
	svc := &fakePaymentService{err: fmt.Errorf("service.PaymentService.CreatePayment: %w", storage.ErrPaymentExists)}
	handler := handlers.CreatePaymentHandler(testLogger(), svc)

	rec := postJSON(t, handler, "/api/payments", handlers.CreatePaymentRequest{
		OrderID: 10,
		Method:  models.PaymentMethodCard,
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "order already has a payment", decodeError(t, rec).Error)
}

func TestCreatePaymentHandler_InvalidMethod(t *testing.T) {
	handler := handlers.CreatePaymentHandler(testLogger(), &fakePaymentService{})

	rec := postJSON(t, handler, "/api/payments", handlers.CreatePaymentRequest{
		OrderID: 10,
		Method:  "barter",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Method"}, decodeError(t, rec).Fields)
}

func TestUpdatePaymentHandler_NoFields(t *testing.T) {
	router := chi.NewRouter()
	router.Patch("/api/payments/{id}", handlers.UpdatePaymentHandler(testLogger(), &fakePaymentService{}))

	req := httptest.NewRequest(http.MethodPatch, "/api/payments/1", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation failed", resp.Error)
	assert.ElementsMatch(t, []string{"Status", "Amount"}, resp.Fields)
}

func TestUpdatePaymentHandler_InvalidStatus(t *testing.T) {
	router := chi.NewRouter()
	router.Patch("/api/payments/{id}", handlers.UpdatePaymentHandler(testLogger(), &fakePaymentService{}))

	req := httptest.NewRequest(http.MethodPatch, "/api/payments/1", strings.NewReader(`{"status":"refunded"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Status"}, decodeError(t, rec).Fields)
}

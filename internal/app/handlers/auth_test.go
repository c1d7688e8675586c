package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/linemk/storefront/internal/app/handlers"
	"github.com/linemk/storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"net/http/httptest"
)

func TestAuthHandler_Success(t *testing.T) {
	handler := handlers.AuthHandler(testLogger(), &fakeAuthService{token: "issued-token"})

	rec := postJSON(t, handler, "/api/auth", handlers.AuthRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "issued-token", resp.Token)
}

func TestAuthHandler_InvalidCredentials(t *testing.T) {
	handler := handlers.AuthHandler(testLogger(), &fakeAuthService{err: service.ErrInvalidCredentials})

	rec := postJSON(t, handler, "/api/auth", handlers.AuthRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec).Error)
}

func TestAuthHandler_ValidationFields(t *testing.T) {
	handler := handlers.AuthHandler(testLogger(), &fakeAuthService{token: "unused"})

	rec := postJSON(t, handler, "/api/auth", handlers.AuthRequest{
		Email:    "not-an-email",
		Password: "short",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation failed", resp.Error)
	assert.ElementsMatch(t, []string{"Email", "Password"}, resp.Fields)
}

func TestAuthHandler_MalformedJSON(t *testing.T) {
	handler := handlers.AuthHandler(testLogger(), &fakeAuthService{token: "unused"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

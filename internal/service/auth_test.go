package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/linemk/storefront/internal/auth"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin_Success(t *testing.T) {
	passHash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo := newFakeUserRepo()
	user, err := userRepo.CreateUser(context.Background(), &models.User{
		Email:    "alice@example.com",
		Name:     "Alice",
		PassHash: passHash,
	})
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := service.NewAuthService(testLogger(), userRepo, tokens)

	token, err := svc.Login(context.Background(), "alice@example.com", "correct-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// the issued token verifies and carries the user ID
	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	passHash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo := newFakeUserRepo()
	_, err = userRepo.CreateUser(context.Background(), &models.User{
		Email:    "alice@example.com",
		PassHash: passHash,
	})
	require.NoError(t, err)

	svc := service.NewAuthService(testLogger(), userRepo, auth.NewTokenManager("test-secret", time.Hour))

	token, err := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := service.NewAuthService(testLogger(), newFakeUserRepo(), auth.NewTokenManager("test-secret", time.Hour))

	token, err := svc.Login(context.Background(), "nobody@example.com", "whatever-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Empty(t, token)
}

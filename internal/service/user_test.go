package service_test

import (
	"context"
	"testing"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPasswordAndDefaultsMembership(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := service.NewUserService(testLogger(), userRepo)

	user, err := svc.Register(context.Background(), "alice@example.com", "Alice", "correct-password")
	require.NoError(t, err)

	assert.Equal(t, models.MembershipBronze, user.Membership)
	assert.NotEqual(t, []byte("correct-password"), user.PassHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PassHash, []byte("correct-password")))
}

func TestRegister_EmailTaken(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := service.NewUserService(testLogger(), userRepo)

	_, err := svc.Register(context.Background(), "alice@example.com", "Alice", "correct-password")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "Other", "other-password")
	assert.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestUpdateUser_ChangesMembership(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := service.NewUserService(testLogger(), userRepo)

	user, err := svc.Register(context.Background(), "alice@example.com", "Alice", "correct-password")
	require.NoError(t, err)

	updated, err := svc.UpdateUser(context.Background(), user.ID, "alice@example.com", "Alice", models.MembershipGold)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipGold, updated.Membership)
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc := service.NewUserService(testLogger(), newFakeUserRepo())

	err := svc.DeleteUser(context.Background(), 404)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

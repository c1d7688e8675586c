package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages user accounts.
type UserService interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, email, name, membership string) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewUserService(log *slog.Logger, userRepo storage.UserStorage) UserService {
	return &userService{log: log, userRepo: userRepo}
}

// Register creates a new account with a bcrypt-hashed password (bcrypt salts
// automatically) and bronze membership.
func (s *userService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	const op = "service.UserService.Register"
	logger := s.log.With(slog.String("op", op), slog.String("email", email))

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user := &models.User{
		Email:      email,
		Name:       name,
		PassHash:   passHash,
		Membership: models.MembershipBronze,
	}
	user, err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user registered", slog.Int64("userID", user.ID))
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "service.UserService.GetUser"

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "service.UserService.ListUsers"

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, email, name, membership string) (*models.User, error) {
	const op = "service.UserService.UpdateUser"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", id))

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user.Email = email
	user.Name = name
	user.Membership = membership
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		logger.Error("failed to update user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("user updated")
	return user, nil
}

// DeleteUser removes the account. A user with orders is never deleted: the
// repository reports storage.ErrUserHasOrders and the outcome is the same
// every time given the same state.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	const op = "service.UserService.DeleteUser"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", id))

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		logger.Warn("failed to delete user", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("user deleted")
	return nil
}

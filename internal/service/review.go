package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
)

// ReviewService manages product reviews.
type ReviewService interface {
	CreateReview(ctx context.Context, productID int64, name, description string) (*models.Review, error)
	GetReview(ctx context.Context, productID, id int64) (*models.Review, error)
	ListReviews(ctx context.Context, productID int64) ([]*models.Review, error)
	UpdateReview(ctx context.Context, productID, id int64, name, description string) (*models.Review, error)
	DeleteReview(ctx context.Context, productID, id int64) error
}

type reviewService struct {
	log        *slog.Logger
	reviewRepo storage.ReviewStorage
}

func NewReviewService(log *slog.Logger, reviewRepo storage.ReviewStorage) ReviewService {
	return &reviewService{log: log, reviewRepo: reviewRepo}
}

func (s *reviewService) CreateReview(ctx context.Context, productID int64, name, description string) (*models.Review, error) {
	const op = "service.ReviewService.CreateReview"

	rev := &models.Review{ProductID: productID, Name: name, Description: description}
	rev, err := s.reviewRepo.CreateReview(ctx, rev)
	if err != nil {
		s.log.Error("failed to create review", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rev, nil
}

func (s *reviewService) GetReview(ctx context.Context, productID, id int64) (*models.Review, error) {
	const op = "service.ReviewService.GetReview"

	rev, err := s.reviewRepo.GetReviewByID(ctx, productID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rev, nil
}

func (s *reviewService) ListReviews(ctx context.Context, productID int64) ([]*models.Review, error) {
	const op = "service.ReviewService.ListReviews"

	reviews, err := s.reviewRepo.ListReviewsByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reviews, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, productID, id int64, name, description string) (*models.Review, error) {
	const op = "service.ReviewService.UpdateReview"

	rev, err := s.reviewRepo.GetReviewByID(ctx, productID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rev.Name = name
	rev.Description = description
	if err := s.reviewRepo.UpdateReview(ctx, rev); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rev, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, productID, id int64) error {
	const op = "service.ReviewService.DeleteReview"

	if err := s.reviewRepo.DeleteReview(ctx, productID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

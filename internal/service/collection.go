package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
)

// CollectionService manages product collections.
type CollectionService interface {
	CreateCollection(ctx context.Context, title string) (*models.Collection, error)
	GetCollection(ctx context.Context, id int64) (*models.Collection, error)
	ListCollections(ctx context.Context) ([]*models.Collection, error)
	UpdateCollection(ctx context.Context, id int64, title string) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id int64) error
}

type collectionService struct {
	log            *slog.Logger
	collectionRepo storage.CollectionStorage
}

func NewCollectionService(log *slog.Logger, collectionRepo storage.CollectionStorage) CollectionService {
	return &collectionService{log: log, collectionRepo: collectionRepo}
}

func (s *collectionService) CreateCollection(ctx context.Context, title string) (*models.Collection, error) {
	const op = "service.CollectionService.CreateCollection"

	c, err := s.collectionRepo.CreateCollection(ctx, &models.Collection{Title: title})
	if err != nil {
		s.log.Error("failed to create collection", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *collectionService) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	const op = "service.CollectionService.GetCollection"

	c, err := s.collectionRepo.GetCollectionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *collectionService) ListCollections(ctx context.Context) ([]*models.Collection, error) {
	const op = "service.CollectionService.ListCollections"

	collections, err := s.collectionRepo.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collections, nil
}

func (s *collectionService) UpdateCollection(ctx context.Context, id int64, title string) (*models.Collection, error) {
	const op = "service.CollectionService.UpdateCollection"

	c := &models.Collection{ID: id, Title: title}
	if err := s.collectionRepo.UpdateCollection(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// DeleteCollection rejects deletion while products still reference the
// collection (storage.ErrCollectionInUse).
func (s *collectionService) DeleteCollection(ctx context.Context, id int64) error {
	const op = "service.CollectionService.DeleteCollection"

	if err := s.collectionRepo.DeleteCollection(ctx, id); err != nil {
		s.log.Warn("failed to delete collection", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

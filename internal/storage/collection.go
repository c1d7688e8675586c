package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/linemk/storefront/internal/domain/models"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrCollectionInUse is returned when a collection still has products.
	ErrCollectionInUse = errors.New("collection includes one or more products")
)

// CollectionStorage describes persistence for product collections.
type CollectionStorage interface {
	CreateCollection(ctx context.Context, c *models.Collection) (*models.Collection, error)
	GetCollectionByID(ctx context.Context, id int64) (*models.Collection, error)
	ListCollections(ctx context.Context) ([]*models.Collection, error)
	UpdateCollection(ctx context.Context, c *models.Collection) error
	DeleteCollection(ctx context.Context, id int64) error
}

type collectionRepository struct {
	db *sql.DB
}

func NewCollectionRepository(db *sql.DB) CollectionStorage {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) CreateCollection(ctx context.Context, c *models.Collection) (*models.Collection, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO collections (title) VALUES ($1) RETURNING id", c.Title).Scan(&c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *collectionRepository) GetCollectionByID(ctx context.Context, id int64) (*models.Collection, error) {
	c := &models.Collection{}
	row := r.db.QueryRowContext(ctx, "SELECT id, title FROM collections WHERE id = $1", id)
	if err := row.Scan(&c.ID, &c.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *collectionRepository) ListCollections(ctx context.Context) ([]*models.Collection, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, title FROM collections ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*models.Collection
	for rows.Next() {
		c := &models.Collection{}
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) UpdateCollection(ctx context.Context, c *models.Collection) error {
	res, err := r.db.ExecContext(ctx, "UPDATE collections SET title = $1 WHERE id = $2", c.Title, c.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

// DeleteCollection removes a collection. Products reference collections with
// RESTRICT, so deletion of a non-empty collection maps to ErrCollectionInUse.
func (r *collectionRepository) DeleteCollection(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM collections WHERE id = $1", id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrCollectionInUse
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

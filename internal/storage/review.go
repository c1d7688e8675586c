package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/linemk/storefront/internal/domain/models"
)

var ErrReviewNotFound = errors.New("review not found")

// ReviewStorage describes persistence for product reviews.
type ReviewStorage interface {
	CreateReview(ctx context.Context, rev *models.Review) (*models.Review, error)
	GetReviewByID(ctx context.Context, productID, id int64) (*models.Review, error)
	ListReviewsByProductID(ctx context.Context, productID int64) ([]*models.Review, error)
	UpdateReview(ctx context.Context, rev *models.Review) error
	DeleteReview(ctx context.Context, productID, id int64) error
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewStorage {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, rev *models.Review) (*models.Review, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO reviews (product_id, name, description, date)
		 VALUES ($1, $2, $3, NOW()) RETURNING id, date`,
		rev.ProductID, rev.Name, rev.Description,
	).Scan(&rev.ID, &rev.Date)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return rev, nil
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, productID, id int64) (*models.Review, error) {
	rev := &models.Review{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, product_id, name, description, date FROM reviews WHERE id = $1 AND product_id = $2", id, productID)
	if err := row.Scan(&rev.ID, &rev.ProductID, &rev.Name, &rev.Description, &rev.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rev, nil
}

func (r *reviewRepository) ListReviewsByProductID(ctx context.Context, productID int64) ([]*models.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, product_id, name, description, date FROM reviews WHERE product_id = $1 ORDER BY date DESC", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		rev := &models.Review{}
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.Name, &rev.Description, &rev.Date); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateReview(ctx context.Context, rev *models.Review) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET name = $1, description = $2 WHERE id = $3 AND product_id = $4",
		rev.Name, rev.Description, rev.ID, rev.ProductID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) DeleteReview(ctx context.Context, productID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM reviews WHERE id = $1 AND product_id = $2", id, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

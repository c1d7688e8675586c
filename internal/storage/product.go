package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/linemk/storefront/internal/domain/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrProductInUse is returned when a product is referenced by order items.
	ErrProductInUse = errors.New("product is associated with an order item")
)

// ProductStorage describes persistence for catalog products.
type ProductStorage interface {
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	// GetProductByIDTx reads a product inside a transaction with a row lock,
	// used when snapshotting prices into order items.
	GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error)
	// ListProducts returns the catalog, optionally filtered by collection.
	ListProducts(ctx context.Context, collectionID *int64) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = "id, title, slug, description, unit_price, inventory, collection_id, last_update"

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	var description sql.NullString
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &description, &p.UnitPrice, &p.Inventory, &p.CollectionID, &p.LastUpdate)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (title, slug, description, unit_price, inventory, collection_id, last_update)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, last_update`,
		p.Title, p.Slug, p.Description, p.UnitPrice, p.Inventory, p.CollectionID,
	).Scan(&p.ID, &p.LastUpdate)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1 FOR SHARE", id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) ListProducts(ctx context.Context, collectionID *int64) ([]*models.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	args := []any{}
	if collectionID != nil {
		query += " WHERE collection_id = $1"
		args = append(args, *collectionID)
	}
	query += " ORDER BY title"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET title = $1, slug = $2, description = $3, unit_price = $4,
		 inventory = $5, collection_id = $6, last_update = NOW() WHERE id = $7`,
		p.Title, p.Slug, p.Description, p.UnitPrice, p.Inventory, p.CollectionID, p.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrCollectionNotFound
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a product. Order items hold a RESTRICT reference, so a
// product that has been ordered maps to ErrProductInUse. Cart items and reviews
// cascade away with the product.
func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrProductInUse
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

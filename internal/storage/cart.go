package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/linemk/storefront/internal/domain/models"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartStorage describes persistence for carts and their items.
type CartStorage interface {
	CreateCart(ctx context.Context, c *models.Cart) (*models.Cart, error)
	GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error
	// AddItem inserts a cart line or, when the product is already in the cart,
	// increments its quantity (UNIQUE(cart_id, product_id) upsert).
	AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
	// GetCartItemsTx reads the cart lines inside a transaction with row locks,
	// used during order placement.
	GetCartItemsTx(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) ([]models.CartItem, error)
	DeleteCartTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) CartStorage {
	return &cartRepository{db: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, c *models.Cart) (*models.Cart, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO carts (id) VALUES ($1) RETURNING created_at", c.ID).Scan(&c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *cartRepository) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	c := &models.Cart{}
	row := r.db.QueryRowContext(ctx, "SELECT id, created_at FROM carts WHERE id = $1", id)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, p.title, p.unit_price, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := models.CartItem{}
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductTitle, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM carts WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *cartRepository) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	item := &models.CartItem{CartID: cartID, ProductID: productID}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity`,
		cartID, productID, quantity,
	).Scan(&item.ID, &item.Quantity)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			// either the cart or the product is gone
			if pqErr.Constraint == "cart_items_product_id_fkey" {
				return nil, ErrProductNotFound
			}
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = $1 WHERE id = $2 AND cart_id = $3",
		quantity, itemID, cartID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE id = $1 AND cart_id = $2", itemID, cartID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) GetCartItemsTx(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) ([]models.CartItem, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, p.title, p.unit_price, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
		FOR UPDATE OF ci`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		item := models.CartItem{}
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductTitle, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) DeleteCartTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM carts WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartNotFound
	}
	return nil
}

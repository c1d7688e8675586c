package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
)

// CartView is a cart together with its computed total price.
type CartView struct {
	*models.Cart
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartService manages anonymous shopping carts.
type CartService interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*CartView, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error)
	UpdateItem(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
}

type cartService struct {
	log         *slog.Logger
	cartRepo    storage.CartStorage
	productRepo storage.ProductStorage
}

func NewCartService(log *slog.Logger, cartRepo storage.CartStorage, productRepo storage.ProductStorage) CartService {
	return &cartService{
		log:         log,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) CreateCart(ctx context.Context) (*models.Cart, error) {
	const op = "service.CartService.CreateCart"

	cart := &models.Cart{ID: uuid.New()}
	cart, err := s.cartRepo.CreateCart(ctx, cart)
	if err != nil {
		s.log.Error("failed to create cart", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("cart created", slog.String("op", op), slog.String("cartID", cart.ID.String()))
	return cart, nil
}

// GetCart returns the cart with its items and the total price
// (sum of unit_price * quantity over all lines).
func (s *cartService) GetCart(ctx context.Context, id uuid.UUID) (*CartView, error) {
	const op = "service.CartService.GetCart"

	cart, err := s.cartRepo.GetCartByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	total := decimal.Zero
	for _, item := range cart.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return &CartView{Cart: cart, TotalPrice: total}, nil
}

func (s *cartService) DeleteCart(ctx context.Context, id uuid.UUID) error {
	const op = "service.CartService.DeleteCart"

	if err := s.cartRepo.DeleteCart(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AddItem validates the product before touching the cart, so a line can
// never point at a nonexistent product. An existing line for the same
// product gets its quantity incremented.
func (s *cartService) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	const op = "service.CartService.AddItem"
	logger := s.log.With(slog.String("op", op), slog.String("cartID", cartID.String()), slog.Int64("productID", productID))

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		logger.Warn("product lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.cartRepo.AddItem(ctx, cartID, productID, quantity)
	if err != nil {
		logger.Error("failed to add cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	item.ProductTitle = product.Title
	item.UnitPrice = product.UnitPrice

	logger.Info("cart item added", slog.Int("quantity", item.Quantity))
	return item, nil
}

func (s *cartService) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error {
	const op = "service.CartService.UpdateItem"

	if err := s.cartRepo.UpdateItemQuantity(ctx, cartID, itemID, quantity); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	const op = "service.CartService.RemoveItem"

	if err := s.cartRepo.DeleteItem(ctx, cartID, itemID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

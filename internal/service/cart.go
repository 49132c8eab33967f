package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/solekicks/storefront/internal/models"
	"github.com/solekicks/storefront/internal/repo"
	"gorm.io/gorm"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required: %w", ErrValidation)
	}
	return s.Repo.GetOrCreateCart(ctx, userID)
}

// AddItem merges into the line matching (cart, product, size, color) or
// inserts a new one. A missing size or color counts as the empty string, so
// two adds without a variant land on the same row. Quantity defaults to 1
// when the caller sends nothing useful.
func (s *CartService) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int, size, color string) (*models.CartItem, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product id required: %w", ErrValidation)
	}
	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.Repo.GetCartByID(ctx, cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart %s: %w", cartID, ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
	}
	if err := s.Repo.AddCartItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	item, err := s.Repo.UpdateCartItemQuantity(ctx, itemID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return item, err
}

// RemoveItem is idempotent: deleting an id that is already gone is not an
// error at this layer.
func (s *CartService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	return s.Repo.RemoveCartItem(ctx, itemID)
}

func (s *CartService) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return s.Repo.ClearCart(ctx, cartID)
}

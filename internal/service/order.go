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

// statusTransitions is the order lifecycle: pending → processing → shipped →
// delivered, with cancelled reachable from any non-terminal state. Delivered
// and cancelled have no outgoing edges.
var statusTransitions = map[string]map[string]bool{
	models.OrderStatusPending: {
		models.OrderStatusProcessing: true,
		models.OrderStatusCancelled:  true,
	},
	models.OrderStatusProcessing: {
		models.OrderStatusShipped:   true,
		models.OrderStatusCancelled: true,
	},
	models.OrderStatusShipped: {
		models.OrderStatusDelivered: true,
		models.OrderStatusCancelled: true,
	},
}

func canTransition(from, to string) bool {
	return statusTransitions[from][to]
}

type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, shippingAddress string) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required: %w", ErrValidation)
	}

	order, err := s.Repo.PlaceOrder(ctx, userID, shippingAddress)
	switch {
	case errors.Is(err, repo.ErrCartEmpty):
		return nil, fmt.Errorf("nothing to order: %w", ErrEmptyCart)
	case errors.Is(err, repo.ErrInsufficientStock):
		return nil, fmt.Errorf("not enough stock: %w", ErrInsufficientStock)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("product no longer available: %w", ErrNotFound)
	}
	return order, err
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, role string) ([]models.Order, error) {
	if role == models.RoleAdmin {
		return s.Repo.ListAllOrders(ctx)
	}
	return s.Repo.ListUserOrders(ctx, userID)
}

// GetOrder enforces owner-or-admin visibility.
func (s *OrderService) GetOrder(ctx context.Context, orderID, callerID uuid.UUID, role string) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	if role != models.RoleAdmin && order.UserID != callerID {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrForbidden)
	}
	return order, nil
}

func (s *OrderService) SetStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	if !canTransition(order.Status, status) {
		return nil, fmt.Errorf("cannot move order from %s to %s: %w", order.Status, status, ErrValidation)
	}

	updated, err := s.Repo.UpdateOrderStatus(ctx, orderID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	return updated, err
}

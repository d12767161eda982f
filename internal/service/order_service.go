package service

import (
	"context"
	"errors"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/repository"
)

// OrderService covers reads and the administrative status transition.
// Orders are never created here; only FinalizeService creates orders.
type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// SetStatus validates the target status before any mutation. Transitions
// to Delivered also stamp the delivery fields when not already set.
func (s *OrderService) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, errf(KindValidation, "%q is not a valid order status", status)
	}

	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errf(KindNotFound, "order %s not found", orderID)
		}
		return nil, err
	}

	return order, nil
}

// Get returns an order visible to the caller: its owner, or an admin.
func (s *OrderService) Get(ctx context.Context, orderID, callerUserID string, isAdmin bool) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errf(KindNotFound, "order %s not found", orderID)
		}
		return nil, err
	}

	if !isAdmin && order.UserID != callerUserID {
		return nil, errf(KindForbidden, "not authorized to view this order")
	}

	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	err := s.repo.Delete(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return errf(KindNotFound, "order %s not found", orderID)
	}
	return err
}

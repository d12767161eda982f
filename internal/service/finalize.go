package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/repository"
)

// OrderEventPublisher receives a best-effort notification after an order
// is committed. Publishing never affects the finalize outcome.
type OrderEventPublisher interface {
	OrderCreated(order *domain.Order)
}

// FinalizeService converts a paid checkout into a permanent order. All
// validation happens before any write; the writes themselves (order
// insert, finalized flag, cart delete) are one transaction in the
// Finalizer.
type FinalizeService struct {
	checkouts repository.CheckoutRepository
	products  repository.ProductRepository
	finalizer repository.Finalizer
	events    OrderEventPublisher // optional
}

func NewFinalizeService(checkouts repository.CheckoutRepository, products repository.ProductRepository, finalizer repository.Finalizer, events OrderEventPublisher) *FinalizeService {
	return &FinalizeService{
		checkouts: checkouts,
		products:  products,
		finalizer: finalizer,
		events:    events,
	}
}

type FinalizeResult struct {
	OrderID   string             `json:"orderId"`
	Status    domain.OrderStatus `json:"status"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"itemCount"`
}

func (s *FinalizeService) Finalize(ctx context.Context, checkoutID, callerUserID string) (*FinalizeResult, error) {
	checkout, err := s.checkouts.GetByID(ctx, checkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrCheckoutNotFound) {
			return nil, errf(KindNotFound, "checkout %s not found", checkoutID)
		}
		return nil, err
	}

	if checkout.UserID != callerUserID {
		return nil, errf(KindForbidden, "not authorized to finalize this checkout")
	}
	if len(checkout.Items) == 0 {
		return nil, errf(KindEmptyCheckout, "checkout %s has no items", checkoutID)
	}
	if err := validateLineItems(checkout.Items); err != nil {
		return nil, err
	}

	orderItems, err := s.resolveOrderItems(ctx, checkout.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:          checkout.UserID,
		OrderItems:      orderItems,
		ShippingAddress: checkout.ShippingAddress,
		PaymentMethod:   checkout.PaymentMethod,
		PaymentDetails:  checkout.PaymentDetails,
		TotalPrice:      itemsTotal(orderItems),
		IsPaid:          checkout.IsPaid,
		PaidAt:          checkout.PaidAt,
		PaymentStatus:   checkout.PaymentStatus,
		Status:          domain.OrderStatusProcessing,
	}

	if err := s.finalizer.FinalizeCheckout(ctx, checkout.ID, checkout.UserID, order); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyFinalized):
			return nil, errf(KindAlreadyFinalized, "checkout %s is already finalized", checkoutID)
		case errors.Is(err, repository.ErrCheckoutNotFound):
			return nil, errf(KindNotFound, "checkout %s not found", checkoutID)
		}
		return nil, err
	}

	if s.events != nil {
		s.events.OrderCreated(order)
	}
	slog.Info("checkout finalized", "checkout_id", checkout.ID, "order_id", order.ID, "user_id", order.UserID, "total", order.TotalPrice)

	return &FinalizeResult{
		OrderID:   order.ID,
		Status:    order.Status,
		Total:     order.TotalPrice,
		ItemCount: len(order.OrderItems),
	}, nil
}

// validateLineItems rejects the whole finalize when any item lacks a
// required field, naming each offending item and field.
func validateLineItems(items []domain.LineItem) error {
	var problems []string
	for i, item := range items {
		var missing []string
		if item.ProductID == "" {
			missing = append(missing, "productId")
		}
		if item.Name == "" {
			missing = append(missing, "name")
		}
		if item.Price <= 0 {
			missing = append(missing, "price")
		}
		if item.Quantity <= 0 || item.Quantity > 1000 {
			missing = append(missing, "quantity")
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("item %d: %s", i, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return errf(KindInvalidLineItem, "items missing required fields: %s", strings.Join(problems, "; "))
	}
	return nil
}

// resolveOrderItems fixes each item's display image: catalog first image,
// then the snapshot's stored image, then "". Always a plain string.
func (s *FinalizeService) resolveOrderItems(ctx context.Context, items []domain.LineItem) ([]domain.LineItem, error) {
	products, err := s.products.FindByIDs(ctx, distinctProductIDs(items))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]domain.LineItem, len(items))
	for i, item := range items {
		if p, ok := byID[item.ProductID]; ok && p.FirstImage() != "" {
			item.Image = p.FirstImage()
		}
		out[i] = item
	}
	return out, nil
}

func itemsTotal(items []domain.LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/repository"
)

// CheckoutService drives the checkout record lifecycle: created → paid,
// with finalization handled by FinalizeService. A checkout is a snapshot;
// later cart mutations never touch it.
type CheckoutService struct {
	checkouts repository.CheckoutRepository
	products  repository.ProductRepository
}

func NewCheckoutService(checkouts repository.CheckoutRepository, products repository.ProductRepository) *CheckoutService {
	return &CheckoutService{
		checkouts: checkouts,
		products:  products,
	}
}

type OpenCheckoutInput struct {
	Items           []domain.LineItem
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
	TotalPrice      float64
}

// Open validates the snapshot and creates a new checkout record in state
// created/pending. Nothing is written when validation fails.
func (s *CheckoutService) Open(ctx context.Context, userID string, in OpenCheckoutInput) (*domain.Checkout, error) {
	if userID == "" {
		return nil, errf(KindValidation, "user is required")
	}
	if len(in.Items) == 0 {
		return nil, errf(KindValidation, "at least one checkout item is required")
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return nil, errf(KindValidation, "item %d: productId is required", i)
		}
		if item.Quantity <= 0 {
			return nil, errf(KindValidation, "item %d: quantity must be positive", i)
		}
	}
	if !in.ShippingAddress.Complete() {
		return nil, errf(KindValidation, "shipping address must include address, city, postalCode and country")
	}
	if !in.PaymentMethod.Valid() {
		return nil, errf(KindValidation, "unsupported payment method %q", in.PaymentMethod)
	}
	if in.TotalPrice <= 0 {
		return nil, errf(KindValidation, "totalPrice must be positive")
	}

	// Bulk-resolve products; every distinct id must exist.
	ids := distinctProductIDs(in.Items)
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, errf(KindUnknownProduct, "one or more product ids are invalid")
	}

	checkout := &domain.Checkout{
		UserID:          userID,
		Items:           append([]domain.LineItem(nil), in.Items...),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		TotalPrice:      in.TotalPrice,
		IsPaid:          false,
		PaymentStatus:   domain.PaymentStatusPending,
	}

	if err := s.checkouts.Insert(ctx, checkout); err != nil {
		return nil, err
	}

	return checkout, nil
}

// ConfirmPayment transitions a checkout to paid. The payment is accepted
// when the caller-supplied status token says "paid" (any case) or the
// normalized gateway status reads COMPLETED; anything else fails without
// touching the record. The record must belong to the caller.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, checkoutID, callerUserID, statusToken string, gatewayPayload map[string]any) (*domain.Checkout, error) {
	checkout, err := s.checkouts.GetByID(ctx, checkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrCheckoutNotFound) {
			return nil, errf(KindNotFound, "checkout %s not found", checkoutID)
		}
		return nil, err
	}

	if checkout.UserID != callerUserID {
		return nil, errf(KindForbidden, "not authorized to update this checkout")
	}
	if checkout.IsFinalized {
		return nil, errf(KindAlreadyFinalized, "checkout %s is already finalized", checkoutID)
	}

	details := NormalizePaymentDetails(gatewayPayload)
	if !strings.EqualFold(statusToken, "paid") && !paymentCompleted(details) {
		return nil, errf(KindInvalidPaymentStatus, "payment status must be 'paid', got %q", statusToken)
	}

	updated, err := s.checkouts.SetPaid(ctx, checkoutID, details)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyFinalized):
			return nil, errf(KindAlreadyFinalized, "checkout %s is already finalized", checkoutID)
		case errors.Is(err, repository.ErrCheckoutNotFound):
			return nil, errf(KindNotFound, "checkout %s not found", checkoutID)
		}
		return nil, err
	}

	return updated, nil
}

func distinctProductIDs(items []domain.LineItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

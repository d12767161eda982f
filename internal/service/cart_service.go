package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Arshadkhan96/Market-Max/internal/cache"
	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/repository"
	"golang.org/x/sync/singleflight"
)

// CartService owns the line-item merge and total derivation logic. Prices,
// names and images always come from the catalog at add time, never from
// the caller.
type CartService struct {
	repo     repository.CartRepository
	products repository.ProductRepository
	cache    cache.CartCache
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, products repository.ProductRepository, cartCache cache.CartCache) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		cache:    cartCache,
	}
}

// Resolve returns the owner's cart, creating and persisting an empty one
// on first touch. Reads are cache-first; concurrent misses for the same
// owner collapse into one repository call.
func (s *CartService) Resolve(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error) {
	if !owner.Valid() {
		return nil, errf(KindInvalidOwner, "exactly one of userId or guestId is required")
	}

	v, err, _ := s.sfg.Do(owner.String(), func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, owner)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("cart cache get failed", "owner", owner.String(), "error", err)
		}

		cart, errGet := s.repo.GetByOwner(ctx, owner)
		if errors.Is(errGet, repository.ErrCartNotFound) {
			cart = s.emptyCart(owner)
			if errUpsert := s.repo.Upsert(ctx, cart); errUpsert != nil {
				return nil, errUpsert
			}
		} else if errGet != nil {
			return nil, errGet
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(setCtx, owner, cart); errSet != nil {
				slog.Warn("cart cache set failed", "owner", owner.String(), "error", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem merges into an existing (product, size, color) line or appends a
// new one, then recomputes the total and persists.
func (s *CartService) AddItem(ctx context.Context, owner domain.OwnerKey, productID string, quantity int, size, color string) (*domain.Cart, error) {
	if !owner.Valid() {
		return nil, errf(KindInvalidOwner, "exactly one of userId or guestId is required")
	}
	if productID == "" {
		return nil, errf(KindValidation, "productId is required")
	}
	if quantity < 1 {
		return nil, errf(KindValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errf(KindProductNotFound, "product %s not found", productID)
		}
		return nil, err
	}

	cart, err := s.loadOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	if i := cart.FindLine(productID, size, color); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.LineItem{
			ProductID: productID,
			Name:      product.Name,
			Image:     product.FirstImage(),
			Price:     product.Price,
			Quantity:  quantity,
			Size:      size,
			Color:     color,
			AddedAt:   time.Now(),
		})
	}
	cart.RecalcTotal()

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	s.invalidate(owner)

	return cart, nil
}

// UpdateQuantity sets the matching line's quantity to the given absolute
// value; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, owner domain.OwnerKey, productID string, quantity int, size, color string) (*domain.Cart, error) {
	if !owner.Valid() {
		return nil, errf(KindInvalidOwner, "exactly one of userId or guestId is required")
	}

	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	i := cart.FindLine(productID, size, color)
	if i < 0 {
		return nil, errf(KindLineNotFound, "product %s not in cart", productID)
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}
	cart.RecalcTotal()

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	s.invalidate(owner)

	return cart, nil
}

// RemoveItem removes the matching line. Removing a line that is not there
// is a distinguishable failure, not a silent no-op.
func (s *CartService) RemoveItem(ctx context.Context, owner domain.OwnerKey, productID, size, color string) (*domain.Cart, error) {
	if !owner.Valid() {
		return nil, errf(KindInvalidOwner, "exactly one of userId or guestId is required")
	}

	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	i := cart.FindLine(productID, size, color)
	if i < 0 {
		return nil, errf(KindLineNotFound, "product %s not in cart", productID)
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.RecalcTotal()

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	s.invalidate(owner)

	return cart, nil
}

// Clear empties the cart and zeroes its total. A missing cart is already
// empty and counts as success.
func (s *CartService) Clear(ctx context.Context, owner domain.OwnerKey) error {
	if !owner.Valid() {
		return errf(KindInvalidOwner, "exactly one of userId or guestId is required")
	}

	cart, err := s.repo.GetByOwner(ctx, owner)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	cart.Items = nil
	cart.TotalPrice = 0

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return err
	}
	s.invalidate(owner)

	return nil
}

// load fetches the cart for mutation, bypassing the cache. A missing cart
// means whatever line the caller is targeting is not there.
func (s *CartService) load(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error) {
	cart, err := s.repo.GetByOwner(ctx, owner)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil, errf(KindLineNotFound, "cart is empty")
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) loadOrCreate(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error) {
	cart, err := s.repo.GetByOwner(ctx, owner)
	if errors.Is(err, repository.ErrCartNotFound) {
		return s.emptyCart(owner), nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) emptyCart(owner domain.OwnerKey) *domain.Cart {
	return &domain.Cart{
		UserID:  owner.UserID,
		GuestID: owner.GuestID,
		Items:   []domain.LineItem{},
	}
}

func (s *CartService) invalidate(owner domain.OwnerKey) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, owner); err != nil {
		slog.Warn("cart cache invalidate failed", "owner", owner.String(), "error", err)
	}
}

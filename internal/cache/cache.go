package cache

import (
	"context"
	"errors"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error)
	Set(ctx context.Context, owner domain.OwnerKey, cart *domain.Cart) error
	Delete(ctx context.Context, owner domain.OwnerKey) error
}

var ErrCacheMiss = errors.New("cache miss")

package repository

import (
	"context"
	"errors"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCheckoutNotFound = errors.New("checkout not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrAlreadyFinalized = errors.New("checkout already finalized")
)

// Consumers define these interfaces, not the MongoDB implementations.

type CartRepository interface {
	GetByOwner(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error)
	Upsert(ctx context.Context, cart *domain.Cart) error
	DeleteByOwner(ctx context.Context, owner domain.OwnerKey) error
}

type CheckoutRepository interface {
	Insert(ctx context.Context, checkout *domain.Checkout) error
	GetByID(ctx context.Context, id string) (*domain.Checkout, error)
	SetPaid(ctx context.Context, id string, details *domain.PaymentDetails) (*domain.Checkout, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// ProductFilter narrows catalog listings. Zero values mean "no constraint".
type ProductFilter struct {
	Category string
	Size     string
	Color    string
	MinPrice float64
	MaxPrice float64
	Search   string
	SortBy   string // "price_asc", "price_desc", "newest"
	Limit    int64
}

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	BestSeller(ctx context.Context) (*domain.Product, error)
	FindSimilar(ctx context.Context, productID string, limit int64) ([]domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Insert(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// Finalizer performs the one multi-document transaction in the system:
// order insert, checkout finalized-flag flip and cart delete, all or none.
type Finalizer interface {
	FinalizeCheckout(ctx context.Context, checkoutID, userID string, order *domain.Order) error
}

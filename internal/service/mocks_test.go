package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Arshadkhan96/Market-Max/internal/cache"
	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/repository"
)

type mockCartRepository struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart // keyed by owner key string
	err   error
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: make(map[string]*domain.Cart)}
}

func (m *mockCartRepository) GetByOwner(_ context.Context, owner domain.OwnerKey) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[owner.String()]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	copied := *cart
	copied.Items = append([]domain.LineItem(nil), cart.Items...)
	return &copied, nil
}

func (m *mockCartRepository) Upsert(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if cart.ID == "" {
		cart.ID = "cart-" + cart.UserID + cart.GuestID
	}
	cart.UpdatedAt = time.Now()
	owner := domain.OwnerKey{UserID: cart.UserID, GuestID: cart.GuestID}
	copied := *cart
	m.carts[owner.String()] = &copied
	return nil
}

func (m *mockCartRepository) DeleteByOwner(_ context.Context, owner domain.OwnerKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[owner.String()]; !ok {
		return repository.ErrCartNotFound
	}
	delete(m.carts, owner.String())
	return nil
}

type mockProductRepository struct {
	mu       sync.Mutex
	products map[string]domain.Product
	err      error
}

func newMockProductRepository(products ...domain.Product) *mockProductRepository {
	m := &mockProductRepository{products: make(map[string]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepository) FindByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepository) List(context.Context, repository.ProductFilter) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) Insert(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepository) Update(context.Context, *domain.Product) error { return nil }
func (m *mockProductRepository) Delete(context.Context, string) error          { return nil }

func (m *mockProductRepository) BestSeller(context.Context) (*domain.Product, error) {
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) FindSimilar(context.Context, string, int64) ([]domain.Product, error) {
	return nil, nil
}

type mockCheckoutRepository struct {
	mu        sync.Mutex
	checkouts map[string]*domain.Checkout
	nextID    int
	err       error
}

func newMockCheckoutRepository() *mockCheckoutRepository {
	return &mockCheckoutRepository{checkouts: make(map[string]*domain.Checkout)}
}

func (m *mockCheckoutRepository) Insert(_ context.Context, checkout *domain.Checkout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	checkout.ID = fmt.Sprintf("chk-%d", m.nextID)
	checkout.CreatedAt = time.Now()
	copied := *checkout
	m.checkouts[checkout.ID] = &copied
	return nil
}

func (m *mockCheckoutRepository) GetByID(_ context.Context, id string) (*domain.Checkout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	checkout, ok := m.checkouts[id]
	if !ok {
		return nil, repository.ErrCheckoutNotFound
	}
	copied := *checkout
	copied.Items = append([]domain.LineItem(nil), checkout.Items...)
	return &copied, nil
}

func (m *mockCheckoutRepository) SetPaid(_ context.Context, id string, details *domain.PaymentDetails) (*domain.Checkout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	checkout, ok := m.checkouts[id]
	if !ok {
		return nil, repository.ErrCheckoutNotFound
	}
	if checkout.IsFinalized {
		return nil, repository.ErrAlreadyFinalized
	}
	now := time.Now()
	checkout.IsPaid = true
	checkout.PaymentStatus = domain.PaymentStatusPaid
	checkout.PaidAt = &now
	checkout.PaymentDetails = details
	copied := *checkout
	return &copied, nil
}

// mockFinalizer mimics the transactional behavior: the compare-and-swap on
// is_finalized decides the outcome, and the order insert plus cart delete
// happen only when it succeeds.
type mockFinalizer struct {
	mu        sync.Mutex
	checkouts *mockCheckoutRepository
	carts     *mockCartRepository
	orders    []domain.Order
	err       error
}

func (m *mockFinalizer) FinalizeCheckout(_ context.Context, checkoutID, userID string, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	m.checkouts.mu.Lock()
	defer m.checkouts.mu.Unlock()
	checkout, ok := m.checkouts.checkouts[checkoutID]
	if !ok {
		return repository.ErrCheckoutNotFound
	}
	if checkout.IsFinalized {
		return repository.ErrAlreadyFinalized
	}

	now := time.Now()
	checkout.IsFinalized = true
	checkout.FinalizedAt = &now

	if order.ID == "" {
		order.ID = "order-" + checkoutID
	}
	m.orders = append(m.orders, *order)

	m.carts.mu.Lock()
	delete(m.carts.carts, domain.OwnerKey{UserID: userID}.String())
	m.carts.mu.Unlock()

	return nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, domain.OwnerKey) (*domain.Cart, error) {
	return nil, cache.ErrCacheMiss
}
func (noopCache) Set(context.Context, domain.OwnerKey, *domain.Cart) error { return nil }
func (noopCache) Delete(context.Context, domain.OwnerKey) error            { return nil }

type capturingPublisher struct {
	mu     sync.Mutex
	orders []*domain.Order
}

func (p *capturingPublisher) OrderCreated(order *domain.Order) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order)
}

package http

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Arshadkhan96/Market-Max/internal/auth"
	"github.com/Arshadkhan96/Market-Max/internal/cache"
	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/repository"
	"github.com/Arshadkhan96/Market-Max/internal/service"
	"github.com/go-chi/chi/v5"
)

type stubProductRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product
	nextID   int
}

func newStubProductRepo(products ...domain.Product) *stubProductRepo {
	s := &stubProductRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (s *stubProductRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && int64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *stubProductRepo) BestSeller(context.Context) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *domain.Product
	for _, p := range s.products {
		p := p
		if best == nil || p.Rating > best.Rating {
			best = &p
		}
	}
	if best == nil {
		return nil, repository.ErrProductNotFound
	}
	return best, nil
}

func (s *stubProductRepo) FindSimilar(_ context.Context, productID string, limit int64) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base, ok := s.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	var out []domain.Product
	for _, p := range s.products {
		if p.ID == base.ID || p.Category != base.Category {
			continue
		}
		out = append(out, p)
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubProductRepo) Insert(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		s.nextID++
		p.ID = fmt.Sprintf("prod-%d", s.nextID)
	}
	s.products[p.ID] = *p
	return nil
}

func (s *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

type stubCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func (s *stubCartRepo) GetByOwner(_ context.Context, owner domain.OwnerKey) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[owner.String()]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	copied := *cart
	copied.Items = append([]domain.LineItem(nil), cart.Items...)
	return &copied, nil
}

func (s *stubCartRepo) Upsert(_ context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart.ID == "" {
		cart.ID = "cart-" + cart.UserID + cart.GuestID
	}
	owner := domain.OwnerKey{UserID: cart.UserID, GuestID: cart.GuestID}
	copied := *cart
	s.carts[owner.String()] = &copied
	return nil
}

func (s *stubCartRepo) DeleteByOwner(_ context.Context, owner domain.OwnerKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[owner.String()]; !ok {
		return repository.ErrCartNotFound
	}
	delete(s.carts, owner.String())
	return nil
}

type stubCheckoutRepo struct {
	mu        sync.Mutex
	checkouts map[string]*domain.Checkout
	nextID    int
}

func newStubCheckoutRepo() *stubCheckoutRepo {
	return &stubCheckoutRepo{checkouts: make(map[string]*domain.Checkout)}
}

func (s *stubCheckoutRepo) Insert(_ context.Context, checkout *domain.Checkout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	checkout.ID = fmt.Sprintf("chk-%d", s.nextID)
	checkout.CreatedAt = time.Now()
	copied := *checkout
	s.checkouts[checkout.ID] = &copied
	return nil
}

func (s *stubCheckoutRepo) GetByID(_ context.Context, id string) (*domain.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkout, ok := s.checkouts[id]
	if !ok {
		return nil, repository.ErrCheckoutNotFound
	}
	copied := *checkout
	return &copied, nil
}

func (s *stubCheckoutRepo) SetPaid(_ context.Context, id string, details *domain.PaymentDetails) (*domain.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkout, ok := s.checkouts[id]
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

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	order.Status = status
	if status == domain.OrderStatusDelivered {
		order.IsDelivered = true
		if order.DeliveredAt == nil {
			now := time.Now()
			order.DeliveredAt = &now
		}
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrderRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (s *stubUserRepo) Insert(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextID++
	u.ID = fmt.Sprintf("user-%d", s.nextID)
	u.CreatedAt = time.Now()
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

// stubFinalizer applies the order insert, finalized flag and cart delete
// together, the way the transactional implementation does.
type stubFinalizer struct {
	checkouts *stubCheckoutRepo
	carts     *stubCartRepo
	orders    *stubOrderRepo
}

func (s *stubFinalizer) FinalizeCheckout(_ context.Context, checkoutID, userID string, order *domain.Order) error {
	s.checkouts.mu.Lock()
	defer s.checkouts.mu.Unlock()
	checkout, ok := s.checkouts.checkouts[checkoutID]
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
	order.CreatedAt = now
	copied := *order
	s.orders.mu.Lock()
	s.orders.orders[order.ID] = &copied
	s.orders.mu.Unlock()

	s.carts.mu.Lock()
	delete(s.carts.carts, domain.OwnerKey{UserID: userID}.String())
	s.carts.mu.Unlock()

	return nil
}

type missCache struct{}

func (missCache) Get(context.Context, domain.OwnerKey) (*domain.Cart, error) {
	return nil, cache.ErrCacheMiss
}
func (missCache) Set(context.Context, domain.OwnerKey, *domain.Cart) error { return nil }
func (missCache) Delete(context.Context, domain.OwnerKey) error            { return nil }

// testEnv is a fully wired router over in-memory storage.
type testEnv struct {
	router    *chi.Mux
	tokens    *auth.TokenManager
	carts     *stubCartRepo
	checkouts *stubCheckoutRepo
	orders    *stubOrderRepo
	products  *stubProductRepo
	users     *stubUserRepo
}

func newTestEnv(t *testing.T, products ...domain.Product) *testEnv {
	t.Helper()

	carts := newStubCartRepo()
	checkouts := newStubCheckoutRepo()
	orders := newStubOrderRepo()
	productRepo := newStubProductRepo(products...)
	users := newStubUserRepo()
	finalizer := &stubFinalizer{checkouts: checkouts, carts: carts, orders: orders}
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	cartSvc := service.NewCartService(carts, productRepo, missCache{})
	checkoutSvc := service.NewCheckoutService(checkouts, productRepo)
	finalizeSvc := service.NewFinalizeService(checkouts, productRepo, finalizer, nil)
	orderSvc := service.NewOrderService(orders)

	router := NewRouter(RouterDeps{
		Cart:     NewCartHandler(cartSvc),
		Checkout: NewCheckoutHandler(checkoutSvc, finalizeSvc),
		Orders:   NewOrdersHandler(orderSvc),
		Products: NewProductHandler(productRepo),
		Users:    NewUserHandler(users, tokens),
		Tokens:   tokens,
		Timeout:  5 * time.Second,
	})

	return &testEnv{
		router:    router,
		tokens:    tokens,
		carts:     carts,
		checkouts: checkouts,
		orders:    orders,
		products:  productRepo,
		users:     users,
	}
}

func (e *testEnv) tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := e.tokens.Issue(userID, role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func authorize(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

package http

import (
	"net/http"
	"time"

	"github.com/Arshadkhan96/Market-Max/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps bundles everything the route tree needs.
type RouterDeps struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Products *ProductHandler
	Users    *UserHandler
	Tokens   *auth.TokenManager
	Timeout  time.Duration
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(deps.Timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authed := AuthMiddleware(deps.Tokens)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", deps.Users.Register)
			r.Post("/login", deps.Users.Login)
			r.With(authed).Get("/profile", deps.Users.Profile)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", deps.Products.List)
			r.Get("/best-seller", deps.Products.BestSeller)
			r.Get("/new-arrivals", deps.Products.NewArrivals)
			r.Get("/similar/{id}", deps.Products.Similar)
			r.Get("/{id}", deps.Products.Get)
			r.Group(func(r chi.Router) {
				r.Use(authed, AdminOnly)
				r.Post("/", deps.Products.Create)
				r.Put("/{id}", deps.Products.Update)
				r.Delete("/{id}", deps.Products.Delete)
			})
		})

		// Cart routes take the owner key from the request so guest
		// sessions work without authentication.
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.GetCart)
			r.Post("/", deps.Cart.AddItem)
			r.Put("/", deps.Cart.UpdateQuantity)
			r.Delete("/{productId}", deps.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(authed)
			r.Post("/", deps.Checkout.Open)
			r.Put("/{id}/pay", deps.Checkout.Pay)
			r.Post("/{id}/finalize", deps.Checkout.Finalize)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authed)
			r.Get("/", deps.Orders.ListMine)
			r.Get("/{id}", deps.Orders.Get)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authed, AdminOnly)
			r.Get("/orders", deps.Orders.ListAll)
			r.Put("/orders/{id}", deps.Orders.SetStatus)
			r.Delete("/orders/{id}", deps.Orders.Delete)
			r.Get("/users", deps.Users.ListAll)
			r.Post("/users", deps.Users.AdminCreate)
			r.Put("/users/{id}", deps.Users.AdminUpdate)
			r.Delete("/users/{id}", deps.Users.AdminDelete)
		})
	})

	return r
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/Arshadkhan96/Market-Max/internal/auth"
	"github.com/Arshadkhan96/Market-Max/internal/config"
	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/repository"
)

// Seeds the catalog with sample products and creates the admin account.
// Intended for development environments only.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	users := repository.NewMongoUserRepository(db)
	products := repository.NewMongoProductRepository(db)

	if err := repository.EnsureIndexes(ctx, users, products); err != nil {
		slog.Error("index creation failed", "error", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(getEnvDefault("ADMIN_PASSWORD", "admin123"))
	if err != nil {
		slog.Error("password hash failed", "error", err)
		os.Exit(1)
	}
	admin := &domain.User{
		Name:         "Admin",
		Email:        getEnvDefault("ADMIN_EMAIL", "admin@example.com"),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := users.Insert(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			slog.Info("admin user already exists", "email", admin.Email)
		} else {
			slog.Error("admin user insert failed", "error", err)
			os.Exit(1)
		}
	}

	for _, p := range sampleProducts() {
		product := p
		if err := products.Insert(ctx, &product); err != nil {
			slog.Error("product insert failed", "name", product.Name, "error", err)
			os.Exit(1)
		}
		slog.Info("seeded product", "id", product.ID, "name", product.Name)
	}

	slog.Info("seeding complete")
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{
			Name:         "Classic Oxford Shirt",
			Description:  "Long-sleeve button-down in breathable cotton.",
			Price:        39.99,
			Images:       []string{"https://picsum.photos/seed/oxford/600/800"},
			Category:     "Men",
			Sizes:        []string{"S", "M", "L", "XL"},
			Colors:       []string{"White", "Blue"},
			CountInStock: 40,
			Rating:       4.6,
		},
		{
			Name:         "Slim Fit Chinos",
			Description:  "Stretch twill chinos with a tapered leg.",
			Price:        54.50,
			Images:       []string{"https://picsum.photos/seed/chinos/600/800"},
			Category:     "Men",
			Sizes:        []string{"30", "32", "34", "36"},
			Colors:       []string{"Khaki", "Navy"},
			CountInStock: 25,
			Rating:       4.2,
		},
		{
			Name:         "Knit Midi Dress",
			Description:  "Ribbed knit dress with a relaxed silhouette.",
			Price:        64.00,
			Images:       []string{"https://picsum.photos/seed/midi/600/800"},
			Category:     "Women",
			Sizes:        []string{"XS", "S", "M", "L"},
			Colors:       []string{"Black", "Rust"},
			CountInStock: 18,
			Rating:       4.8,
		},
		{
			Name:         "Canvas High-Tops",
			Description:  "Vulcanized canvas sneakers with a rubber toe cap.",
			Price:        49.95,
			Images:       []string{"https://picsum.photos/seed/hightops/600/800"},
			Category:     "Footwear",
			Sizes:        []string{"7", "8", "9", "10", "11"},
			Colors:       []string{"Black", "White", "Red"},
			CountInStock: 60,
			Rating:       4.4,
		},
		{
			Name:         "Wool Beanie",
			Description:  "Merino wool beanie, one size.",
			Price:        19.00,
			Images:       []string{"https://picsum.photos/seed/beanie/600/800"},
			Category:     "Accessories",
			Colors:       []string{"Grey", "Green"},
			CountInStock: 80,
			Rating:       3.9,
		},
	}
}

func getEnvDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

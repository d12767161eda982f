package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCheckoutRepository struct {
	collection *mongo.Collection
}

func NewMongoCheckoutRepository(db *mongo.Database) CheckoutRepository {
	return &mongoCheckoutRepository{collection: db.Collection("checkouts")}
}

func (m *mongoCheckoutRepository) Insert(ctx context.Context, checkout *domain.Checkout) error {
	now := time.Now()
	if checkout.ID == "" {
		checkout.ID = primitive.NewObjectID().Hex()
	}
	checkout.CreatedAt = now
	checkout.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, checkout); err != nil {
		return fmt.Errorf("failed to insert checkout: %w", err)
	}

	return nil
}

func (m *mongoCheckoutRepository) GetByID(ctx context.Context, id string) (*domain.Checkout, error) {
	var checkout domain.Checkout

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&checkout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("failed to get checkout: %w", err)
	}

	return &checkout, nil
}

// SetPaid transitions the record to paid in a single update. The filter
// excludes finalized records so a late payment callback can never touch a
// terminal checkout.
func (m *mongoCheckoutRepository) SetPaid(ctx context.Context, id string, details *domain.PaymentDetails) (*domain.Checkout, error) {
	now := time.Now()
	filter := bson.M{"_id": id, "is_finalized": false}
	update := bson.M{"$set": bson.M{
		"is_paid":         true,
		"payment_status":  domain.PaymentStatusPaid,
		"paid_at":         now,
		"payment_details": details,
		"updated_at":      now,
	}}

	var updated domain.Checkout
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish missing from finalized.
			if _, getErr := m.GetByID(ctx, id); getErr == nil {
				return nil, ErrAlreadyFinalized
			}
			return nil, ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("failed to mark checkout paid: %w", err)
	}

	return &updated, nil
}

func (m *mongoCheckoutRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create checkout indexes: %w", err)
	}

	return nil
}

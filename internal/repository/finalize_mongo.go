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

// mongoFinalizer runs the order insert, the checkout finalized-flag flip
// and the cart delete inside one session transaction. The finalized-flag
// flip is a compare-and-swap on is_finalized==false performed inside the
// transaction, so two concurrent finalize calls commit exactly one order.
type mongoFinalizer struct {
	client    *mongo.Client
	checkouts *mongo.Collection
	orders    *mongo.Collection
	carts     *mongo.Collection
}

func NewMongoFinalizer(client *mongo.Client, db *mongo.Database) Finalizer {
	return &mongoFinalizer{
		client:    client,
		checkouts: db.Collection("checkouts"),
		orders:    db.Collection("orders"),
		carts:     db.Collection("carts"),
	}
}

func (f *mongoFinalizer) FinalizeCheckout(ctx context.Context, checkoutID, userID string, order *domain.Order) error {
	session, err := f.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	now := time.Now()
	if order.ID == "" {
		order.ID = primitive.NewObjectID().Hex()
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"_id": checkoutID, "is_finalized": false}
		update := bson.M{"$set": bson.M{
			"is_finalized": true,
			"finalized_at": now,
			"updated_at":   now,
		}}

		res := f.checkouts.FindOneAndUpdate(sc, filter, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After))
		if err := res.Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				// The record is either gone or already finalized; decide
				// which inside the same transaction.
				count, countErr := f.checkouts.CountDocuments(sc, bson.M{"_id": checkoutID})
				if countErr != nil {
					return nil, fmt.Errorf("failed to re-check checkout: %w", countErr)
				}
				if count > 0 {
					return nil, ErrAlreadyFinalized
				}
				return nil, ErrCheckoutNotFound
			}
			return nil, fmt.Errorf("failed to mark checkout finalized: %w", err)
		}

		if _, err := f.orders.InsertOne(sc, order); err != nil {
			return nil, fmt.Errorf("failed to insert order: %w", err)
		}

		// The originating cart may have expired or never existed; a zero
		// delete count is not an error here.
		if _, err := f.carts.DeleteOne(sc, bson.M{"user_id": userID}); err != nil {
			return nil, fmt.Errorf("failed to delete cart: %w", err)
		}

		return nil, nil
	})

	if err != nil {
		if errors.Is(err, ErrAlreadyFinalized) || errors.Is(err, ErrCheckoutNotFound) {
			return err
		}
		return fmt.Errorf("finalize transaction failed: %w", err)
	}

	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SouravDn-p/mobile-canvas-api/internal/cart/domain"
)

const collectionName = "user_items"

// Store persists per-user cart and wishlist documents in MongoDB.
type Store struct {
	collection *mongo.Collection
}

// NewStore binds the store to its collection.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionName)}
}

// Get returns the user's document, or an empty record for an unknown user.
func (s *Store) Get(ctx context.Context, userID string) (*domain.UserItems, error) {
	var record domain.UserItems

	filter := bson.M{"user_id": userID}
	err := s.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &domain.UserItems{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get user items: %w", err)
	}

	return &record, nil
}

// Save upserts the user's document keyed by user_id.
func (s *Store) Save(ctx context.Context, record domain.UserItems) error {
	filter := bson.M{"user_id": record.UserID}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert user items: %w", err)
	}

	return nil
}

// EnsureIndexes creates the unique user_id index. Safe to call on every boot.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := s.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("create user_items indexes: %w", err)
	}

	return nil
}

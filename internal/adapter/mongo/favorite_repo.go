package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/repository"
)

type FavoriteMongoRepository struct {
	db *mongo.Database
}

func NewFavoriteMongoRepository(client *mongo.Client, dbName string) *FavoriteMongoRepository {
	return &FavoriteMongoRepository{
		db: client.Database(dbName),
	}
}

type favoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	AdID      string             `bson:"ad_id"`
	CreatedAt primitive.DateTime `bson:"created_at"`
}

// EnsureIndexes creates the unique user+ad compound index the toggle
// semantics rely on.
func (r *FavoriteMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(favoriteCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "ad_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create favorites index: %w", err)
	}
	return nil
}

func (r *FavoriteMongoRepository) Add(ctx context.Context, userID, adID string) error {
	doc := favoriteDocument{
		UserID:    userID,
		AdID:      adID,
		CreatedAt: primitive.NewDateTimeFromTime(nowUTC()),
	}
	_, err := r.db.Collection(favoriteCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return fmt.Errorf("failed to add favorite in mongo: %w", err)
	}
	return nil
}

func (r *FavoriteMongoRepository) Remove(ctx context.Context, userID, adID string) error {
	res, err := r.db.Collection(favoriteCollectionName).DeleteOne(ctx, bson.M{"user_id": userID, "ad_id": adID})
	if err != nil {
		return fmt.Errorf("failed to remove favorite from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FavoriteMongoRepository) Exists(ctx context.Context, userID, adID string) (bool, error) {
	count, err := r.db.Collection(favoriteCollectionName).CountDocuments(ctx, bson.M{"user_id": userID, "ad_id": adID})
	if err != nil {
		return false, fmt.Errorf("failed to check favorite existence in mongo: %w", err)
	}
	return count > 0, nil
}

func (r *FavoriteMongoRepository) ListAdIDsByUser(ctx context.Context, userID string) ([]string, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(favoriteCollectionName).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []favoriteDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode favorite list from mongo: %w", err)
	}

	adIDs := make([]string, len(docs))
	for i := range docs {
		adIDs[i] = docs[i].AdID
	}
	return adIDs, nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/repository"
)

const userCollectionName = "users"

type UserMongoRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewUserMongoRepository(client *mongo.Client, dbName string) *UserMongoRepository {
	return &UserMongoRepository{
		client: client,
		db:     client.Database(dbName),
	}
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	Phone        string             `bson:"phone,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    primitive.DateTime `bson:"created_at"`
	UpdatedAt    primitive.DateTime `bson:"updated_at"`
}

func toUserDocument(u *entity.User) (*userDocument, error) {
	doc := &userDocument{
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		CreatedAt:    primitive.NewDateTimeFromTime(u.CreatedAt),
		UpdatedAt:    primitive.NewDateTimeFromTime(u.UpdatedAt),
	}
	if u.ID != "" {
		objID, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toUserEntity(doc *userDocument) *entity.User {
	return &entity.User{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		Name:         doc.Name,
		Phone:        doc.Phone,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt.Time(),
		UpdatedAt:    doc.UpdatedAt.Time(),
	}
}

// EnsureIndexes creates the unique email index. The duplicate-key branch in
// Create relies on it; without the index a register race could slip past the
// EmailExists pre-check.
func (r *UserMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(userCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}
	return nil
}

func (r *UserMongoRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	doc, err := toUserDocument(user)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(userCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicateKey
		}
		return "", fmt.Errorf("failed to create user in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *UserMongoRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc userDocument
	err = r.db.Collection(userCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id from mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}

func (r *UserMongoRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	err := r.db.Collection(userCollectionName).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email from mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}

func (r *UserMongoRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.db.Collection(userCollectionName).CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("failed to check email existence in mongo: %w", err)
	}
	return count > 0, nil
}

func (r *UserMongoRepository) Update(ctx context.Context, user *entity.User) error {
	doc, err := toUserDocument(user)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("user ID is required for update")
	}

	updateFields := bson.M{
		"$set": bson.M{
			"email":         doc.Email,
			"name":          doc.Name,
			"phone":         doc.Phone,
			"password_hash": doc.PasswordHash,
			"updated_at":    doc.UpdatedAt,
		},
	}

	res, err := r.db.Collection(userCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, updateFields)
	if err != nil {
		return fmt.Errorf("failed to update user in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the user and everything they own: their ads (with each ad's
// comments and favorite links), their authored comments and their favorite
// links, all in one transaction.
func (r *UserMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.db.Collection(userCollectionName).DeleteOne(sc, bson.M{"_id": objID})
		if err != nil {
			return nil, fmt.Errorf("failed to delete user from mongo: %w", err)
		}
		if res.DeletedCount == 0 {
			return nil, repository.ErrNotFound
		}

		cursor, err := r.db.Collection(adCollectionName).Find(sc, bson.M{"user_id": id})
		if err != nil {
			return nil, fmt.Errorf("failed to find user ads for cascade: %w", err)
		}
		var ownedAds []adDocument
		if err := cursor.All(sc, &ownedAds); err != nil {
			return nil, fmt.Errorf("failed to decode user ads for cascade: %w", err)
		}
		adIDs := make([]string, len(ownedAds))
		for i := range ownedAds {
			adIDs[i] = ownedAds[i].ID.Hex()
		}

		if len(adIDs) > 0 {
			if _, err := r.db.Collection(commentCollectionName).DeleteMany(sc, bson.M{"ad_id": bson.M{"$in": adIDs}}); err != nil {
				return nil, fmt.Errorf("failed to cascade delete ad comments: %w", err)
			}
			if _, err := r.db.Collection(favoriteCollectionName).DeleteMany(sc, bson.M{"ad_id": bson.M{"$in": adIDs}}); err != nil {
				return nil, fmt.Errorf("failed to cascade delete ad favorites: %w", err)
			}
			if _, err := r.db.Collection(adCollectionName).DeleteMany(sc, bson.M{"user_id": id}); err != nil {
				return nil, fmt.Errorf("failed to cascade delete user ads: %w", err)
			}
		}

		if _, err := r.db.Collection(commentCollectionName).DeleteMany(sc, bson.M{"user_id": id}); err != nil {
			return nil, fmt.Errorf("failed to cascade delete user comments: %w", err)
		}
		if _, err := r.db.Collection(favoriteCollectionName).DeleteMany(sc, bson.M{"user_id": id}); err != nil {
			return nil, fmt.Errorf("failed to cascade delete user favorites: %w", err)
		}
		return nil, nil
	})
	return err
}

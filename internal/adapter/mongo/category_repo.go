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

const categoryCollectionName = "categories"

type CategoryMongoRepository struct {
	db *mongo.Database
}

func NewCategoryMongoRepository(client *mongo.Client, dbName string) *CategoryMongoRepository {
	return &CategoryMongoRepository{
		db: client.Database(dbName),
	}
}

type categoryDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   primitive.DateTime `bson:"created_at"`
	UpdatedAt   primitive.DateTime `bson:"updated_at"`
}

func toCategoryDocument(c *entity.Category) (*categoryDocument, error) {
	doc := &categoryDocument{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   primitive.NewDateTimeFromTime(c.CreatedAt),
		UpdatedAt:   primitive.NewDateTimeFromTime(c.UpdatedAt),
	}
	if c.ID != "" {
		objID, err := primitive.ObjectIDFromHex(c.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toCategoryEntity(doc *categoryDocument) *entity.Category {
	return &entity.Category{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Slug:        doc.Slug,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt.Time(),
		UpdatedAt:   doc.UpdatedAt.Time(),
	}
}

// EnsureIndexes creates the unique slug index that backs the duplicate-key
// branch in Create.
func (r *CategoryMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(categoryCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create categories index: %w", err)
	}
	return nil
}

func (r *CategoryMongoRepository) Create(ctx context.Context, category *entity.Category) (string, error) {
	doc, err := toCategoryDocument(category)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(categoryCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicateKey
		}
		return "", fmt.Errorf("failed to create category in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *CategoryMongoRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc categoryDocument
	err = r.db.Collection(categoryCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by id from mongo: %w", err)
	}
	return toCategoryEntity(&doc), nil
}

func (r *CategoryMongoRepository) List(ctx context.Context) ([]*entity.Category, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.db.Collection(categoryCollectionName).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode category list from mongo: %w", err)
	}

	categories := make([]*entity.Category, len(docs))
	for i := range docs {
		categories[i] = toCategoryEntity(&docs[i])
	}
	return categories, nil
}

func (r *CategoryMongoRepository) Update(ctx context.Context, category *entity.Category) error {
	doc, err := toCategoryDocument(category)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("category ID is required for update")
	}

	updateFields := bson.M{
		"$set": bson.M{
			"name":        doc.Name,
			"slug":        doc.Slug,
			"description": doc.Description,
			"updated_at":  doc.UpdatedAt,
		},
	}

	res, err := r.db.Collection(categoryCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, updateFields)
	if err != nil {
		return fmt.Errorf("failed to update category in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(categoryCollectionName).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete category from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryMongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	count, err := r.db.Collection(categoryCollectionName).CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, fmt.Errorf("failed to check category existence in mongo: %w", err)
	}
	return count > 0, nil
}

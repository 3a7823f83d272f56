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

type CommentMongoRepository struct {
	db *mongo.Database
}

func NewCommentMongoRepository(client *mongo.Client, dbName string) *CommentMongoRepository {
	return &CommentMongoRepository{
		db: client.Database(dbName),
	}
}

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AdID      string             `bson:"ad_id"`
	UserID    string             `bson:"user_id"`
	Content   string             `bson:"content"`
	Rating    *int               `bson:"rating,omitempty"`
	CreatedAt primitive.DateTime `bson:"created_at"`
	UpdatedAt primitive.DateTime `bson:"updated_at"`
}

func toCommentDocument(c *entity.Comment) (*commentDocument, error) {
	doc := &commentDocument{
		AdID:      c.AdID,
		UserID:    c.UserID,
		Content:   c.Content,
		Rating:    c.Rating,
		CreatedAt: primitive.NewDateTimeFromTime(c.CreatedAt),
		UpdatedAt: primitive.NewDateTimeFromTime(c.UpdatedAt),
	}
	if c.ID != "" {
		objID, err := primitive.ObjectIDFromHex(c.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid comment ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toCommentEntity(doc *commentDocument) *entity.Comment {
	return &entity.Comment{
		ID:        doc.ID.Hex(),
		AdID:      doc.AdID,
		UserID:    doc.UserID,
		Content:   doc.Content,
		Rating:    doc.Rating,
		CreatedAt: doc.CreatedAt.Time(),
		UpdatedAt: doc.UpdatedAt.Time(),
	}
}

func (r *CommentMongoRepository) Create(ctx context.Context, comment *entity.Comment) (string, error) {
	doc, err := toCommentDocument(comment)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(commentCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create comment in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *CommentMongoRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc commentDocument
	err = r.db.Collection(commentCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment by id from mongo: %w", err)
	}
	return toCommentEntity(&doc), nil
}

func (r *CommentMongoRepository) ListByAd(ctx context.Context, adID string) ([]*entity.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(commentCollectionName).Find(ctx, bson.M{"ad_id": adID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []commentDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode comment list from mongo: %w", err)
	}

	comments := make([]*entity.Comment, len(docs))
	for i := range docs {
		comments[i] = toCommentEntity(&docs[i])
	}
	return comments, nil
}

func (r *CommentMongoRepository) Update(ctx context.Context, comment *entity.Comment) error {
	doc, err := toCommentDocument(comment)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("comment ID is required for update")
	}

	updateFields := bson.M{
		"$set": bson.M{
			"content":    doc.Content,
			"rating":     doc.Rating,
			"updated_at": doc.UpdatedAt,
		},
	}

	res, err := r.db.Collection(commentCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, updateFields)
	if err != nil {
		return fmt.Errorf("failed to update comment in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(commentCollectionName).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete comment from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

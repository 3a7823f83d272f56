package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/repository"
)

const (
	adCollectionName       = "ads"
	commentCollectionName  = "comments"
	favoriteCollectionName = "favorites"
)

type AdMongoRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewAdMongoRepository(client *mongo.Client, dbName string) *AdMongoRepository {
	return &AdMongoRepository{
		client: client,
		db:     client.Database(dbName),
	}
}

type adDocument struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	UserID          string              `bson:"user_id"`
	CategoryID      string              `bson:"category_id"`
	Title           string              `bson:"title"`
	Description     string              `bson:"description"`
	Price           float64             `bson:"price"`
	Seller          string              `bson:"seller,omitempty"`
	Location        string              `bson:"location,omitempty"`
	CEP             string              `bson:"cep,omitempty"`
	Bedrooms        *int                `bson:"bedrooms,omitempty"`
	Bathrooms       *int                `bson:"bathrooms,omitempty"`
	Rules           []string            `bson:"rules"`
	Amenities       []string            `bson:"amenities"`
	CustomRules     string              `bson:"custom_rules,omitempty"`
	CustomAmenities string              `bson:"custom_amenities,omitempty"`
	Images          []string            `bson:"images"`
	Status          string              `bson:"status"`
	CreatedAt       primitive.DateTime  `bson:"created_at"`
	UpdatedAt       primitive.DateTime  `bson:"updated_at"`
	PublishedAt     *primitive.DateTime `bson:"published_at,omitempty"`
}

func toAdDocument(a *entity.Ad) (*adDocument, error) {
	doc := &adDocument{
		UserID:          a.UserID,
		CategoryID:      a.CategoryID,
		Title:           a.Title,
		Description:     a.Description,
		Price:           a.Price,
		Seller:          a.Seller,
		Location:        a.Location,
		CEP:             a.CEP,
		Bedrooms:        a.Bedrooms,
		Bathrooms:       a.Bathrooms,
		Rules:           a.Rules,
		Amenities:       a.Amenities,
		CustomRules:     a.CustomRules,
		CustomAmenities: a.CustomAmenities,
		Images:          a.Images,
		Status:          string(a.Status),
		CreatedAt:       primitive.NewDateTimeFromTime(a.CreatedAt),
		UpdatedAt:       primitive.NewDateTimeFromTime(a.UpdatedAt),
	}
	if a.PublishedAt != nil {
		dt := primitive.NewDateTimeFromTime(*a.PublishedAt)
		doc.PublishedAt = &dt
	}
	if a.ID != "" {
		objID, err := primitive.ObjectIDFromHex(a.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid ad ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toAdEntity(doc *adDocument) *entity.Ad {
	ad := &entity.Ad{
		ID:              doc.ID.Hex(),
		UserID:          doc.UserID,
		CategoryID:      doc.CategoryID,
		Title:           doc.Title,
		Description:     doc.Description,
		Price:           doc.Price,
		Seller:          doc.Seller,
		Location:        doc.Location,
		CEP:             doc.CEP,
		Bedrooms:        doc.Bedrooms,
		Bathrooms:       doc.Bathrooms,
		Rules:           doc.Rules,
		Amenities:       doc.Amenities,
		CustomRules:     doc.CustomRules,
		CustomAmenities: doc.CustomAmenities,
		Images:          doc.Images,
		Status:          entity.AdStatus(doc.Status),
		CreatedAt:       doc.CreatedAt.Time(),
		UpdatedAt:       doc.UpdatedAt.Time(),
	}
	if doc.PublishedAt != nil {
		t := doc.PublishedAt.Time()
		ad.PublishedAt = &t
	}
	if ad.Rules == nil {
		ad.Rules = []string{}
	}
	if ad.Amenities == nil {
		ad.Amenities = []string{}
	}
	if ad.Images == nil {
		ad.Images = []string{}
	}
	return ad
}

func (r *AdMongoRepository) Create(ctx context.Context, ad *entity.Ad) (string, error) {
	doc, err := toAdDocument(ad)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(adCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create ad in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *AdMongoRepository) GetByID(ctx context.Context, id string) (*entity.Ad, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc adDocument
	err = r.db.Collection(adCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ad by id from mongo: %w", err)
	}
	return toAdEntity(&doc), nil
}

func filterToBSON(filter repository.AdFilter) bson.M {
	mongoFilter := bson.M{}
	if filter.Status != "" {
		mongoFilter["status"] = string(filter.Status)
	}
	if filter.CategoryID != "" {
		mongoFilter["category_id"] = filter.CategoryID
	}
	if filter.Location != "" {
		mongoFilter["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Location), Options: "i"}
	}
	if filter.Bedrooms != nil {
		mongoFilter["bedrooms"] = *filter.Bedrooms
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		mongoFilter["price"] = price
	}
	return mongoFilter
}

func (r *AdMongoRepository) List(ctx context.Context, filter repository.AdFilter) ([]*entity.Ad, int64, error) {
	mongoFilter := filterToBSON(filter)

	findOptions := options.Find()
	findOptions.SetSkip(int64(filter.Offset))
	findOptions.SetLimit(int64(filter.Limit))
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(adCollectionName).Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ads from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []adDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode ad list from mongo: %w", err)
	}

	ads := make([]*entity.Ad, len(docs))
	for i := range docs {
		ads[i] = toAdEntity(&docs[i])
	}

	total, err := r.db.Collection(adCollectionName).CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ads in mongo: %w", err)
	}

	return ads, total, nil
}

func (r *AdMongoRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Ad, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(adCollectionName).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads by user from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []adDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode user ads from mongo: %w", err)
	}

	ads := make([]*entity.Ad, len(docs))
	for i := range docs {
		ads[i] = toAdEntity(&docs[i])
	}
	return ads, nil
}

func (r *AdMongoRepository) Update(ctx context.Context, ad *entity.Ad) error {
	doc, err := toAdDocument(ad)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("ad ID is required for update")
	}

	updateFields := bson.M{
		"$set": bson.M{
			"category_id":      doc.CategoryID,
			"title":            doc.Title,
			"description":      doc.Description,
			"price":            doc.Price,
			"seller":           doc.Seller,
			"location":         doc.Location,
			"cep":              doc.CEP,
			"bedrooms":         doc.Bedrooms,
			"bathrooms":        doc.Bathrooms,
			"rules":            doc.Rules,
			"amenities":        doc.Amenities,
			"custom_rules":     doc.CustomRules,
			"custom_amenities": doc.CustomAmenities,
			"images":           doc.Images,
			"status":           doc.Status,
			"updated_at":       doc.UpdatedAt,
			"published_at":     doc.PublishedAt,
		},
	}

	res, err := r.db.Collection(adCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, updateFields)
	if err != nil {
		return fmt.Errorf("failed to update ad in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the ad together with its comments and favorite links in a
// single transaction.
func (r *AdMongoRepository) Delete(ctx context.Context, id string) error {
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
		res, err := r.db.Collection(adCollectionName).DeleteOne(sc, bson.M{"_id": objID})
		if err != nil {
			return nil, fmt.Errorf("failed to delete ad from mongo: %w", err)
		}
		if res.DeletedCount == 0 {
			return nil, repository.ErrNotFound
		}
		if _, err := r.db.Collection(commentCollectionName).DeleteMany(sc, bson.M{"ad_id": id}); err != nil {
			return nil, fmt.Errorf("failed to cascade delete comments: %w", err)
		}
		if _, err := r.db.Collection(favoriteCollectionName).DeleteMany(sc, bson.M{"ad_id": id}); err != nil {
			return nil, fmt.Errorf("failed to cascade delete favorites: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *AdMongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	count, err := r.db.Collection(adCollectionName).CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, fmt.Errorf("failed to check ad existence in mongo: %w", err)
	}
	return count > 0, nil
}

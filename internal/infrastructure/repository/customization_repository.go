package repository

import (
	"context"
	"fmt"
	"time"

	"checkout-customizer-layer/internal/domain"
	"checkout-customizer-layer/internal/infrastructure/repository/entity"
	"checkout-customizer-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCustomizationRepository implements CustomizationRepository using MongoDB
type MongoCustomizationRepository struct {
	collection *mongo.Collection
}

// NewMongoCustomizationRepository creates a new MongoDB customization repository
func NewMongoCustomizationRepository(db *mongo.Database) ports.CustomizationRepository {
	return &MongoCustomizationRepository{
		collection: db.Collection("customizations"),
	}
}

// Save saves or overwrites the customization for a shop. There is no merge
// and no versioning: the admin form submits the whole document every time.
func (r *MongoCustomizationRepository) Save(ctx context.Context, customization *domain.Customization) error {
	doc := entity.MongoCustomizationDocFromDomain(customization)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"shopDomain": customization.ShopDomain}

	_, err := r.collection.ReplaceOne(ctx, filter, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to save customization: %w", err)
	}

	return nil
}

// GetByShop retrieves the customization for a shop
func (r *MongoCustomizationRepository) GetByShop(ctx context.Context, shopDomain string) (*domain.Customization, error) {
	var doc entity.MongoCustomizationDoc
	filter := bson.M{"shopDomain": shopDomain}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customization: %w", err)
	}

	return doc.ToDomain(), nil
}

// DeleteByShop removes the customization for a shop
func (r *MongoCustomizationRepository) DeleteByShop(ctx context.Context, shopDomain string) error {
	filter := bson.M{"shopDomain": shopDomain}

	_, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete customization: %w", err)
	}

	return nil
}

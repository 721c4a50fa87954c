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

// MongoFunctionRunRepository implements FunctionRunRepository using MongoDB
type MongoFunctionRunRepository struct {
	collection *mongo.Collection
}

// NewMongoFunctionRunRepository creates a new MongoDB function-run repository
func NewMongoFunctionRunRepository(db *mongo.Database) ports.FunctionRunRepository {
	return &MongoFunctionRunRepository{
		collection: db.Collection("function_runs"),
	}
}

// LogRun inserts a function-run audit record
func (r *MongoFunctionRunRepository) LogRun(ctx context.Context, run *domain.FunctionRun) error {
	doc := entity.MongoFunctionRunDocFromDomain(run)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to log function run: %w", err)
	}

	return nil
}

// ListRuns retrieves the most recent runs for a shop, newest first
func (r *MongoFunctionRunRepository) ListRuns(ctx context.Context, shopDomain string, limit int64) ([]*domain.FunctionRun, error) {
	filter := bson.M{"shopDomain": shopDomain}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list function runs: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []*domain.FunctionRun
	for cursor.Next(ctx) {
		var doc entity.MongoFunctionRunDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode function run: %w", err)
		}
		runs = append(runs, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return runs, nil
}

package entity

import (
	"time"

	"checkout-customizer-layer/internal/domain"
)

// MongoFunctionRunDoc represents a function-run audit record in MongoDB
type MongoFunctionRunDoc struct {
	ID             string    `bson:"_id"`
	ShopDomain     string    `bson:"shopDomain"`
	Variant        string    `bson:"variant"`
	OperationCount int       `bson:"operationCount"`
	DurationMicros int64     `bson:"durationMicros"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoFunctionRunDoc) ToDomain() *domain.FunctionRun {
	return &domain.FunctionRun{
		ID:             d.ID,
		ShopDomain:     d.ShopDomain,
		Variant:        d.Variant,
		OperationCount: d.OperationCount,
		Duration:       time.Duration(d.DurationMicros) * time.Microsecond,
		CreatedAt:      d.CreatedAt,
	}
}

// MongoFunctionRunDocFromDomain converts a domain entity to a MongoDB document
func MongoFunctionRunDocFromDomain(run *domain.FunctionRun) *MongoFunctionRunDoc {
	return &MongoFunctionRunDoc{
		ID:             run.ID,
		ShopDomain:     run.ShopDomain,
		Variant:        run.Variant,
		OperationCount: run.OperationCount,
		DurationMicros: run.Duration.Microseconds(),
		CreatedAt:      run.CreatedAt,
	}
}

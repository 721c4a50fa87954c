package entity

import (
	"time"

	"checkout-customizer-layer/internal/domain"
)

// MongoCartTotalCondition mirrors domain.CartTotalCondition in MongoDB.
type MongoCartTotalCondition struct {
	GreaterOrSmall string  `bson:"greaterOrSmall"`
	Amount         float64 `bson:"amount"`
}

// MongoProductCondition mirrors domain.ProductCondition in MongoDB.
type MongoProductCondition struct {
	GreaterOrSmall string   `bson:"greaterOrSmall"`
	Products       []string `bson:"products"`
}

// MongoShippingCountryCondition mirrors domain.ShippingCountryCondition in MongoDB.
type MongoShippingCountryCondition struct {
	GreaterOrSmall string `bson:"greaterOrSmall"`
	Country        string `bson:"country"`
}

// MongoConditions mirrors domain.Conditions in MongoDB.
type MongoConditions struct {
	CartTotal       []MongoCartTotalCondition       `bson:"cartTotal,omitempty"`
	Products        []MongoProductCondition         `bson:"products,omitempty"`
	ShippingCountry []MongoShippingCountryCondition `bson:"shippingCountry,omitempty"`
}

// MongoCustomizationDoc represents a customization in MongoDB
type MongoCustomizationDoc struct {
	ID            string          `bson:"_id"`
	ShopDomain    string          `bson:"shopDomain"`
	ShopID        string          `bson:"shopId,omitempty"`
	CustomizeName string          `bson:"customizeName,omitempty"`
	PaymentMethod string          `bson:"paymentMethod,omitempty"`
	Conditions    MongoConditions `bson:"conditions"`
	CreatedAt     time.Time       `bson:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoCustomizationDoc) ToDomain() *domain.Customization {
	cfg := domain.CustomizationConfig{
		ShopID:        d.ShopID,
		CustomizeName: d.CustomizeName,
		PaymentMethod: d.PaymentMethod,
	}
	for _, c := range d.Conditions.CartTotal {
		cfg.Conditions.CartTotal = append(cfg.Conditions.CartTotal, domain.CartTotalCondition{
			GreaterOrSmall: c.GreaterOrSmall,
			Amount:         domain.Amount(c.Amount),
		})
	}
	for _, c := range d.Conditions.Products {
		cfg.Conditions.Products = append(cfg.Conditions.Products, domain.ProductCondition{
			GreaterOrSmall: c.GreaterOrSmall,
			Products:       c.Products,
		})
	}
	for _, c := range d.Conditions.ShippingCountry {
		cfg.Conditions.ShippingCountry = append(cfg.Conditions.ShippingCountry, domain.ShippingCountryCondition{
			GreaterOrSmall: c.GreaterOrSmall,
			Country:        c.Country,
		})
	}
	return &domain.Customization{
		ID:         d.ID,
		ShopDomain: d.ShopDomain,
		Config:     cfg,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// MongoCustomizationDocFromDomain converts a domain entity to a MongoDB document
func MongoCustomizationDocFromDomain(customization *domain.Customization) *MongoCustomizationDoc {
	doc := &MongoCustomizationDoc{
		ID:            customization.ID,
		ShopDomain:    customization.ShopDomain,
		ShopID:        customization.Config.ShopID,
		CustomizeName: customization.Config.CustomizeName,
		PaymentMethod: customization.Config.PaymentMethod,
		CreatedAt:     customization.CreatedAt,
		UpdatedAt:     customization.UpdatedAt,
	}
	for _, c := range customization.Config.Conditions.CartTotal {
		doc.Conditions.CartTotal = append(doc.Conditions.CartTotal, MongoCartTotalCondition{
			GreaterOrSmall: c.GreaterOrSmall,
			Amount:         float64(c.Amount),
		})
	}
	for _, c := range customization.Config.Conditions.Products {
		doc.Conditions.Products = append(doc.Conditions.Products, MongoProductCondition{
			GreaterOrSmall: c.GreaterOrSmall,
			Products:       c.Products,
		})
	}
	for _, c := range customization.Config.Conditions.ShippingCountry {
		doc.Conditions.ShippingCountry = append(doc.Conditions.ShippingCountry, MongoShippingCountryCondition{
			GreaterOrSmall: c.GreaterOrSmall,
			Country:        c.Country,
		})
	}
	return doc
}

package entity

import (
	"time"

	"checkout-customizer-layer/internal/domain"
)

// MongoShopDoc represents an installed shop in MongoDB
type MongoShopDoc struct {
	Domain      string    `bson:"domain"`
	AccessToken string    `bson:"accessToken"`
	Scopes      []string  `bson:"scopes"`
	InstalledAt time.Time `bson:"installedAt"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoShopDoc) ToDomain() *domain.Shop {
	return &domain.Shop{
		Domain:      d.Domain,
		AccessToken: d.AccessToken,
		Scopes:      d.Scopes,
		InstalledAt: d.InstalledAt,
	}
}

// MongoShopDocFromDomain converts a domain entity to a MongoDB document
func MongoShopDocFromDomain(shop *domain.Shop) *MongoShopDoc {
	return &MongoShopDoc{
		Domain:      shop.Domain,
		AccessToken: shop.AccessToken,
		Scopes:      shop.Scopes,
		InstalledAt: shop.InstalledAt,
	}
}

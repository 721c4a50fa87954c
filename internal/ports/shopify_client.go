package ports

import (
	"context"

	shopify "github.com/bold-commerce/go-shopify/v4"
)

// ShopifyClient defines the interface for the Shopify admin API operations
// this service needs: the OAuth install flow, the configuration metafield
// write-back, and webhook registration.
type ShopifyClient interface {
	// Authentication
	GenerateAuthURL(shop string, scopes []string, redirectURI string, state string) (string, error)
	ExchangeToken(ctx context.Context, shop string, code string, redirectURI string) (string, error)

	// Shop API
	GetShop(ctx context.Context, shop string, accessToken string) (*shopify.Shop, error)

	// Configuration metafield (shop-scoped JSON document)
	SetConfigMetafield(ctx context.Context, shop string, accessToken string, value string) error
	DeleteConfigMetafield(ctx context.Context, shop string, accessToken string) error

	// Product API (admin product picker)
	GetProducts(ctx context.Context, shop string, accessToken string, options interface{}) ([]shopify.Product, error)

	// Webhook API
	CreateWebhook(ctx context.Context, shop string, accessToken string, topic string, address string) (*shopify.Webhook, error)
	ListWebhooks(ctx context.Context, shop string, accessToken string, options interface{}) ([]shopify.Webhook, error)
	DeleteWebhook(ctx context.Context, shop string, accessToken string, webhookID uint64) error
}

// EncryptionService defines the interface for access-token encryption at
// rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

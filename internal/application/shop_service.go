package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/domain"
	"checkout-customizer-layer/internal/ports"
)

// Webhook topics this app subscribes to on install.
var defaultWebhookTopics = []string{
	"app/uninstalled",
	"shop/update",
}

// ShopService handles the install lifecycle: OAuth, shop persistence, and
// webhook registration. Access tokens are encrypted before storage and only
// decrypted on the way into an API call.
type ShopService struct {
	shops         ports.ShopRepository
	encryptionSvc ports.EncryptionService
	client        ports.ShopifyClient
	logger        zerolog.Logger
	appURL        string
}

// NewShopService creates a new shop service
func NewShopService(
	shops ports.ShopRepository,
	encryptionSvc ports.EncryptionService,
	client ports.ShopifyClient,
	logger zerolog.Logger,
	appURL string,
) *ShopService {
	return &ShopService{
		shops:         shops,
		encryptionSvc: encryptionSvc,
		client:        client,
		logger:        logger,
		appURL:        appURL,
	}
}

// GenerateAuthURL generates the OAuth authorization URL for a shop.
func (s *ShopService) GenerateAuthURL(ctx context.Context, shop string, scopes []string, state string) (string, error) {
	redirectURI := s.appURL + "/auth/callback"
	authURL, err := s.client.GenerateAuthURL(shop, scopes, redirectURI, state)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to generate auth URL")
		return "", fmt.Errorf("failed to generate auth URL: %w", err)
	}
	return authURL, nil
}

// ExchangeToken exchanges the authorization code for an access token and
// persists the installed shop.
func (s *ShopService) ExchangeToken(ctx context.Context, shop string, code string, scopes []string) (*domain.Shop, error) {
	redirectURI := s.appURL + "/auth/callback"
	accessToken, err := s.client.ExchangeToken(ctx, shop, code, redirectURI)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to exchange token")
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	shopInfo, err := s.client.GetShop(ctx, shop, accessToken)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to get shop info")
		return nil, fmt.Errorf("failed to get shop info: %w", err)
	}

	encryptedToken, err := s.encryptionSvc.Encrypt(accessToken)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to encrypt access token")
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}

	domainShop := &domain.Shop{
		Domain:      shopInfo.MyshopifyDomain,
		AccessToken: encryptedToken,
		Scopes:      scopes,
		InstalledAt: time.Now(),
	}
	if domainShop.Domain == "" {
		domainShop.Domain = shop
	}

	if err := s.shops.SaveShop(ctx, domainShop); err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to save shop")
		return nil, fmt.Errorf("failed to save shop: %w", err)
	}

	s.logger.Info().
		Str("shop", domainShop.Domain).
		Strs("scopes", scopes).
		Msg("Shop installed")

	return domainShop, nil
}

// GetShop retrieves an installed shop with its access token decrypted.
func (s *ShopService) GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	shop, err := s.shops.GetShop(ctx, shopDomain)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	if shop == nil {
		return nil, nil
	}

	if shop.AccessToken != "" {
		decrypted, err := s.encryptionSvc.Decrypt(shop.AccessToken)
		if err != nil {
			s.logger.Error().Err(err).Str("shop", shopDomain).Msg("Failed to decrypt access token")
			return nil, fmt.Errorf("failed to decrypt access token: %w", err)
		}
		shop.AccessToken = decrypted
	}

	return shop, nil
}

// DeleteShop removes an installed shop.
func (s *ShopService) DeleteShop(ctx context.Context, shopDomain string) error {
	if err := s.shops.DeleteShop(ctx, shopDomain); err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}
	s.logger.Info().Str("shop", shopDomain).Msg("Deleted shop")
	return nil
}

// EnsureWebhooks registers the app's webhook subscriptions for a shop,
// skipping topics that are already subscribed.
func (s *ShopService) EnsureWebhooks(ctx context.Context, shopDomain string) error {
	shop, err := s.GetShop(ctx, shopDomain)
	if err != nil {
		return err
	}
	if shop == nil {
		return fmt.Errorf("shop not installed: %s", shopDomain)
	}

	existing, err := s.client.ListWebhooks(ctx, shopDomain, shop.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to list webhooks: %w", err)
	}

	subscribed := make(map[string]bool, len(existing))
	for _, hook := range existing {
		subscribed[hook.Topic] = true
	}

	address := s.appURL + "/webhooks/shopify"
	for _, topic := range defaultWebhookTopics {
		if subscribed[topic] {
			continue
		}
		if _, err := s.client.CreateWebhook(ctx, shopDomain, shop.AccessToken, topic, address); err != nil {
			s.logger.Error().Err(err).Str("shop", shopDomain).Str("topic", topic).Msg("Failed to create webhook")
			return fmt.Errorf("failed to create webhook for %s: %w", topic, err)
		}
		s.logger.Info().Str("shop", shopDomain).Str("topic", topic).Msg("Subscribed to webhook")
	}

	return nil
}

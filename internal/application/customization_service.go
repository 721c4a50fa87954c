package application

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/domain"
	"checkout-customizer-layer/internal/metrics"
	"checkout-customizer-layer/internal/ports"
)

// CustomizationService manages per-shop customization rules. Every write is
// mirrored into the shop's configuration metafield so the checkout functions
// see the same document the admin saved.
type CustomizationService struct {
	customizations ports.CustomizationRepository
	shopService    *ShopService
	client         ports.ShopifyClient
	shopCache      *cache.Cache
	metrics        *metrics.Metrics
	logger         zerolog.Logger
}

// NewCustomizationService creates a new customization service
func NewCustomizationService(
	customizations ports.CustomizationRepository,
	shopService *ShopService,
	client ports.ShopifyClient,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *CustomizationService {
	return &CustomizationService{
		customizations: customizations,
		shopService:    shopService,
		client:         client,
		shopCache:      cache.New(5*time.Minute, 10*time.Minute),
		metrics:        metrics,
		logger:         logger,
	}
}

// installedShop resolves the shop record (with decrypted token), caching it
// briefly to keep admin saves from hammering Mongo and the decryptor.
func (s *CustomizationService) installedShop(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	if cached, found := s.shopCache.Get(shopDomain); found {
		return cached.(*domain.Shop), nil
	}

	shop, err := s.shopService.GetShop(ctx, shopDomain)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, fmt.Errorf("shop not installed: %s", shopDomain)
	}

	s.shopCache.Set(shopDomain, shop, cache.DefaultExpiration)
	return shop, nil
}

// Save persists a customization for a shop and writes it through to the
// configuration metafield.
func (s *CustomizationService) Save(ctx context.Context, shopDomain string, config domain.CustomizationConfig) (*domain.Customization, error) {
	shop, err := s.installedShop(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	existing, err := s.customizations.GetByShop(ctx, shopDomain)
	if err != nil {
		return nil, fmt.Errorf("failed to get customization: %w", err)
	}

	now := time.Now()
	customization := &domain.Customization{
		ID:         uuid.New().String(),
		ShopDomain: shopDomain,
		Config:     config,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if existing != nil {
		customization.ID = existing.ID
		customization.CreatedAt = existing.CreatedAt
	}

	if err := s.customizations.Save(ctx, customization); err != nil {
		return nil, fmt.Errorf("failed to save customization: %w", err)
	}

	if err := s.syncMetafield(ctx, shop, config); err != nil {
		// The document is saved; the metafield write can be retried on the
		// next save. Surface the failure so the admin sees it.
		return nil, err
	}

	s.logger.Info().
		Str("shop", shopDomain).
		Str("customization_id", customization.ID).
		Msg("Saved customization")

	return customization, nil
}

// Get returns the customization for a shop, or nil when none is configured.
func (s *CustomizationService) Get(ctx context.Context, shopDomain string) (*domain.Customization, error) {
	customization, err := s.customizations.GetByShop(ctx, shopDomain)
	if err != nil {
		return nil, fmt.Errorf("failed to get customization: %w", err)
	}
	return customization, nil
}

// Delete removes the customization and its metafield so the checkout
// functions fall back to no-op behavior.
func (s *CustomizationService) Delete(ctx context.Context, shopDomain string) error {
	shop, err := s.installedShop(ctx, shopDomain)
	if err != nil {
		return err
	}

	if err := s.customizations.DeleteByShop(ctx, shopDomain); err != nil {
		return fmt.Errorf("failed to delete customization: %w", err)
	}

	if err := s.client.DeleteConfigMetafield(ctx, shopDomain, shop.AccessToken); err != nil {
		s.logger.Error().Err(err).Str("shop", shopDomain).Msg("Failed to delete config metafield")
		return fmt.Errorf("failed to delete config metafield: %w", err)
	}

	s.logger.Info().Str("shop", shopDomain).Msg("Deleted customization")
	return nil
}

// Purge removes a shop's stored data without touching the Shopify API. Used
// on uninstall, when the access token is already revoked.
func (s *CustomizationService) Purge(ctx context.Context, shopDomain string) error {
	s.shopCache.Delete(shopDomain)
	if err := s.customizations.DeleteByShop(ctx, shopDomain); err != nil {
		return fmt.Errorf("failed to purge customization: %w", err)
	}
	return nil
}

// Products lists the shop's products for the admin product picker.
func (s *CustomizationService) Products(ctx context.Context, shopDomain string) ([]domain.ProductSummary, error) {
	shop, err := s.installedShop(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	products, err := s.client.GetProducts(ctx, shopDomain, shop.AccessToken, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	summaries := make([]domain.ProductSummary, 0, len(products))
	for _, p := range products {
		summary := domain.ProductSummary{
			ID:    fmt.Sprintf("gid://shopify/Product/%d", p.Id),
			Title: p.Title,
		}
		for _, v := range p.Variants {
			summary.VariantIDs = append(summary.VariantIDs, fmt.Sprintf("gid://shopify/ProductVariant/%d", v.Id))
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *CustomizationService) syncMetafield(ctx context.Context, shop *domain.Shop, config domain.CustomizationConfig) error {
	payload, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal customization config: %w", err)
	}

	if err := s.client.SetConfigMetafield(ctx, shop.Domain, shop.AccessToken, string(payload)); err != nil {
		s.logger.Error().Err(err).Str("shop", shop.Domain).Msg("Failed to write config metafield")
		return fmt.Errorf("failed to write config metafield: %w", err)
	}

	s.metrics.MetafieldWritesTotal.Inc()
	return nil
}

package webhook_handlers

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/application"
	"checkout-customizer-layer/internal/domain"
)

// AppUninstalledHandler handles app uninstalled webhook events
type AppUninstalledHandler struct {
	logger               zerolog.Logger
	shopService          *application.ShopService
	customizationService *application.CustomizationService
}

// NewAppUninstalledHandler creates a new app uninstalled webhook handler
func NewAppUninstalledHandler(
	logger zerolog.Logger,
	shopService *application.ShopService,
	customizationService *application.CustomizationService,
) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		logger:               logger,
		shopService:          shopService,
		customizationService: customizationService,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == "app/uninstalled"
}

// Handle processes an app uninstalled webhook event. The access token is
// already revoked at this point, so cleanup is local only.
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	shopDomain := event.Shop
	if shopDomain == "" {
		var shopData map[string]interface{}
		if err := json.Unmarshal(event.Payload, &shopData); err != nil {
			return fmt.Errorf("failed to parse app uninstalled webhook payload: %w", err)
		}
		if d, ok := shopData["myshopify_domain"].(string); ok {
			shopDomain = d
		} else if d, ok := shopData["domain"].(string); ok {
			shopDomain = d
		}
	}
	if shopDomain == "" {
		return fmt.Errorf("app uninstalled webhook without shop domain")
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", shopDomain).
		Msg("Processing app uninstalled webhook event")

	if err := h.customizationService.Purge(ctx, shopDomain); err != nil {
		h.logger.Warn().Err(err).Str("shop", shopDomain).Msg("Failed to purge customization data")
	}

	if err := h.shopService.DeleteShop(ctx, shopDomain); err != nil {
		return fmt.Errorf("failed to delete shop on uninstall: %w", err)
	}

	h.logger.Info().Str("shop", shopDomain).Msg("App uninstalled - cleanup completed")
	return nil
}

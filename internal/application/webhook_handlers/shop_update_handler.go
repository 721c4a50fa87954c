package webhook_handlers

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/domain"
)

// ShopUpdateHandler handles shop update webhook events
type ShopUpdateHandler struct {
	logger zerolog.Logger
}

// NewShopUpdateHandler creates a new shop update webhook handler
func NewShopUpdateHandler(logger zerolog.Logger) *ShopUpdateHandler {
	return &ShopUpdateHandler{
		logger: logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ShopUpdateHandler) CanHandle(topic string) bool {
	return topic == "shop/update"
}

// Handle processes a shop update webhook event
func (h *ShopUpdateHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var shopData map[string]interface{}
	if err := json.Unmarshal(event.Payload, &shopData); err != nil {
		return fmt.Errorf("failed to parse shop update webhook payload: %w", err)
	}

	name, _ := shopData["name"].(string)
	currency, _ := shopData["currency"].(string)

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Str("name", name).
		Str("currency", currency).
		Msg("Shop updated")

	return nil
}

package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/domain"
)

// WebhookHandler processes webhook events for the topics it declares.
type WebhookHandler interface {
	CanHandle(topic string) bool
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}

// WebhookDispatcher routes incoming webhook events to registered handlers.
type WebhookDispatcher struct {
	handlers []WebhookHandler
	logger   zerolog.Logger
}

// NewWebhookDispatcher creates a new webhook dispatcher
func NewWebhookDispatcher(logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		logger: logger,
	}
}

// RegisterHandler adds a handler to the dispatch chain.
func (d *WebhookDispatcher) RegisterHandler(handler WebhookHandler) {
	d.handlers = append(d.handlers, handler)
}

// Dispatch delivers the event to every handler that claims its topic. All
// matching handlers run; the first error is returned after the chain
// completes.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.WebhookEvent) error {
	handled := false
	var firstErr error

	for _, handler := range d.handlers {
		if !handler.CanHandle(event.Topic) {
			continue
		}
		handled = true

		if err := handler.Handle(ctx, event); err != nil {
			d.logger.Error().
				Err(err).
				Str("topic", event.Topic).
				Str("shop", event.Shop).
				Msg("Webhook handler failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to handle webhook %s: %w", event.Topic, err)
			}
		}
	}

	if !handled {
		d.logger.Debug().
			Str("topic", event.Topic).
			Str("shop", event.Shop).
			Msg("No handler registered for webhook topic")
	}

	return firstErr
}

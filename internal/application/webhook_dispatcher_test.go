package application

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/domain"
)

type recordingHandler struct {
	topic   string
	err     error
	handled []string
}

func (h *recordingHandler) CanHandle(topic string) bool {
	return topic == h.topic
}

func (h *recordingHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	h.handled = append(h.handled, event.Topic)
	return h.err
}

func TestDispatchRoutesByTopic(t *testing.T) {
	dispatcher := NewWebhookDispatcher(zerolog.Nop())

	uninstalled := &recordingHandler{topic: "app/uninstalled"}
	update := &recordingHandler{topic: "shop/update"}
	dispatcher.RegisterHandler(uninstalled)
	dispatcher.RegisterHandler(update)

	event := &domain.WebhookEvent{Topic: "shop/update", Shop: "demo.myshopify.com"}
	if err := dispatcher.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(uninstalled.handled) != 0 {
		t.Errorf("uninstalled handler received %d events, want 0", len(uninstalled.handled))
	}
	if len(update.handled) != 1 {
		t.Errorf("update handler received %d events, want 1", len(update.handled))
	}
}

func TestDispatchUnknownTopicIsNotAnError(t *testing.T) {
	dispatcher := NewWebhookDispatcher(zerolog.Nop())
	dispatcher.RegisterHandler(&recordingHandler{topic: "app/uninstalled"})

	event := &domain.WebhookEvent{Topic: "orders/create", Shop: "demo.myshopify.com"}
	if err := dispatcher.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("Dispatch() error = %v, want nil for unhandled topic", err)
	}
}

func TestDispatchRunsAllHandlersAndReturnsFirstError(t *testing.T) {
	dispatcher := NewWebhookDispatcher(zerolog.Nop())

	failing := &recordingHandler{topic: "shop/update", err: errors.New("boom")}
	second := &recordingHandler{topic: "shop/update"}
	dispatcher.RegisterHandler(failing)
	dispatcher.RegisterHandler(second)

	event := &domain.WebhookEvent{Topic: "shop/update"}
	err := dispatcher.Dispatch(context.Background(), event)
	if err == nil {
		t.Fatal("Dispatch() error = nil, want error from failing handler")
	}
	if len(second.handled) != 1 {
		t.Errorf("second handler received %d events, want 1 despite earlier failure", len(second.handled))
	}
}

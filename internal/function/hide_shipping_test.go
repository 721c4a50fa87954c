package function

import (
	"testing"

	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/domain"
)

func deliveryCart(groups ...[]domain.DeliveryOption) domain.Cart {
	cart := domain.Cart{}
	for _, options := range groups {
		cart.DeliveryGroups = append(cart.DeliveryGroups, domain.DeliveryGroup{DeliveryOptions: options})
	}
	return cart
}

func TestHideDelivery(t *testing.T) {
	tests := []struct {
		name        string
		cart        domain.Cart
		wantHandles []string
	}{
		{
			name: "exact title match is hidden, siblings are not",
			cart: deliveryCart([]domain.DeliveryOption{
				{Title: "Standard", Handle: "standard-1"},
				{Title: "Express", Handle: "express-1"},
			}),
			wantHandles: []string{"standard-1"},
		},
		{
			name: "one operation per matching option per group",
			cart: deliveryCart(
				[]domain.DeliveryOption{{Title: "Standard", Handle: "standard-1"}},
				[]domain.DeliveryOption{{Title: "Standard", Handle: "standard-2"}, {Title: "Express", Handle: "express-2"}},
			),
			wantHandles: []string{"standard-1", "standard-2"},
		},
		{
			name: "title comparison is exact",
			cart: deliveryCart([]domain.DeliveryOption{
				{Title: "Standard Shipping", Handle: "standard-long"},
				{Title: "standard", Handle: "standard-lower"},
			}),
			wantHandles: nil,
		},
		{
			name:        "no delivery groups is a no-op",
			cart:        domain.Cart{},
			wantHandles: nil,
		},
	}

	runner := testRunner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runner.HideDelivery(&domain.RunInput{Cart: tt.cart})
			if result == nil || result.Operations == nil {
				t.Fatal("result operations must always be a well-formed list")
			}
			if len(result.Operations) != len(tt.wantHandles) {
				t.Fatalf("got %d operations, want %d: %+v", len(result.Operations), len(tt.wantHandles), result.Operations)
			}
			for i, op := range result.Operations {
				if op.Hide == nil || op.Hide.DeliveryOptionHandle != tt.wantHandles[i] {
					t.Errorf("operation %d = %+v, want hide of %q", i, op, tt.wantHandles[i])
				}
			}
		})
	}
}

func TestHideDeliveryCustomTitle(t *testing.T) {
	runner := NewRunner(zerolog.Nop(), Options{HiddenDeliveryTitle: "Economy"})
	cart := deliveryCart([]domain.DeliveryOption{
		{Title: "Economy", Handle: "economy-1"},
		{Title: "Standard", Handle: "standard-1"},
	})

	result := runner.HideDelivery(&domain.RunInput{Cart: cart})
	if len(result.Operations) != 1 || result.Operations[0].Hide.DeliveryOptionHandle != "economy-1" {
		t.Fatalf("got %+v, want economy-1 hidden", result.Operations)
	}
}

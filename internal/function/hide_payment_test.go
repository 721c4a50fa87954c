package function

import (
	"testing"

	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/domain"
)

func testRunner() *Runner {
	return NewRunner(zerolog.Nop(), DefaultOptions())
}

func runInput(metafieldValue string, cart domain.Cart, methods ...domain.PaymentMethod) *domain.RunInput {
	input := &domain.RunInput{
		Cart:           cart,
		PaymentMethods: methods,
	}
	if metafieldValue != "" {
		input.Shop.Metafield = &domain.Metafield{Value: metafieldValue}
	}
	return input
}

var codMethod = domain.PaymentMethod{
	ID:   "gid://shopify/PaymentCustomizationPaymentMethod/0",
	Name: "Cash on Delivery (COD)",
}

func TestHidePayment(t *testing.T) {
	tests := []struct {
		name      string
		input     *domain.RunInput
		wantHides int
	}{
		{
			name:      "cart total below threshold hides COD",
			input:     runInput(`{"conditions":{"cartTotal":[{"greaterOrSmall":"greater_than","amount":100}]}}`, *cartWithTotal("50.00"), codMethod),
			wantHides: 1,
		},
		{
			name:      "cart total above threshold is a no-op",
			input:     runInput(`{"conditions":{"cartTotal":[{"greaterOrSmall":"greater_than","amount":100}]}}`, *cartWithTotal("150.00"), codMethod),
			wantHides: 0,
		},
		{
			name: "configured product in cart hides COD",
			input: runInput(
				`{"conditions":{"products":[{"greaterOrSmall":"is","products":["gid://shopify/ProductVariant/1"]}]}}`,
				*cartWithVariants("gid://shopify/ProductVariant/1"),
				codMethod,
			),
			wantHides: 1,
		},
		{
			name: "country mismatch is a no-op",
			input: runInput(
				`{"conditions":{"shippingCountry":[{"greaterOrSmall":"is","country":"cn"}]}}`,
				*cartWithCountries("IN"),
				codMethod,
			),
			wantHides: 0,
		},
		{
			name:      "missing metafield is a no-op",
			input:     runInput("", *cartWithTotal("50.00"), codMethod),
			wantHides: 0,
		},
		{
			name:      "malformed metafield is absorbed",
			input:     runInput(`{not valid json`, *cartWithTotal("50.00"), codMethod),
			wantHides: 0,
		},
		{
			name: "no matching payment method is a no-op",
			input: runInput(
				`{"conditions":{"cartTotal":[{"greaterOrSmall":"greater_than","amount":100}]}}`,
				*cartWithTotal("50.00"),
				domain.PaymentMethod{ID: "gid://1", Name: "Credit card"},
			),
			wantHides: 0,
		},
		{
			name: "substring match is enough",
			input: runInput(
				`{"conditions":{"cartTotal":[{"greaterOrSmall":"greater_than","amount":100}]}}`,
				*cartWithTotal("50.00"),
				domain.PaymentMethod{ID: "gid://2", Name: "Cash on Delivery plus fee"},
			),
			wantHides: 1,
		},
		{
			name:      "nil input is a no-op",
			input:     nil,
			wantHides: 0,
		},
	}

	runner := testRunner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runner.HidePayment(tt.input)
			if result == nil || result.Operations == nil {
				t.Fatal("result operations must always be a well-formed list")
			}
			if len(result.Operations) != tt.wantHides {
				t.Fatalf("got %d operations, want %d: %+v", len(result.Operations), tt.wantHides, result.Operations)
			}
			for _, op := range result.Operations {
				if op.Hide == nil || op.Hide.PaymentMethodID == "" {
					t.Errorf("expected a payment hide operation, got %+v", op)
				}
			}
		})
	}
}

func TestHidePaymentFirstMatchOnly(t *testing.T) {
	input := runInput(
		`{"conditions":{"cartTotal":[{"greaterOrSmall":"greater_than","amount":100}]}}`,
		*cartWithTotal("50.00"),
		domain.PaymentMethod{ID: "gid://1", Name: "Cash on Delivery (COD)"},
		domain.PaymentMethod{ID: "gid://2", Name: "Cash on Delivery express"},
	)

	result := testRunner().HidePayment(input)
	if len(result.Operations) != 1 {
		t.Fatalf("got %d operations, want 1", len(result.Operations))
	}
	if result.Operations[0].Hide.PaymentMethodID != "gid://1" {
		t.Errorf("hid %q, want the first matching method", result.Operations[0].Hide.PaymentMethodID)
	}
}

func TestHidePaymentConfiguredTarget(t *testing.T) {
	metafield := `{
		"paymentMethod": "Bank Deposit",
		"conditions": {"cartTotal": [{"greaterOrSmall": "greater_than", "amount": 100}]}
	}`
	input := runInput(metafield, *cartWithTotal("50.00"),
		codMethod,
		domain.PaymentMethod{ID: "gid://bank", Name: "Bank Deposit"},
	)

	// Stock behavior ignores the configured name.
	stock := testRunner().HidePayment(input)
	if len(stock.Operations) != 1 || stock.Operations[0].Hide.PaymentMethodID != codMethod.ID {
		t.Fatalf("stock run = %+v, want COD hidden", stock.Operations)
	}

	// The opt-in flag switches to the configured name.
	runner := NewRunner(zerolog.Nop(), Options{UseConfiguredPaymentTarget: true})
	configured := runner.HidePayment(input)
	if len(configured.Operations) != 1 || configured.Operations[0].Hide.PaymentMethodID != "gid://bank" {
		t.Fatalf("configured run = %+v, want Bank Deposit hidden", configured.Operations)
	}
}

func TestHidePaymentIsIdempotent(t *testing.T) {
	input := runInput(
		`{"conditions":{"cartTotal":[{"greaterOrSmall":"greater_than","amount":100}]}}`,
		*cartWithTotal("50.00"),
		codMethod,
	)

	runner := testRunner()
	first := runner.HidePayment(input)
	second := runner.HidePayment(input)
	if len(first.Operations) != len(second.Operations) {
		t.Fatalf("repeated runs diverged: %+v vs %+v", first, second)
	}
	for i := range first.Operations {
		if *first.Operations[i].Hide != *second.Operations[i].Hide {
			t.Errorf("operation %d diverged", i)
		}
	}
}

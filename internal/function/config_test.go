package function

import "testing"

func TestParseConfig(t *testing.T) {
	t.Run("empty value is not configured", func(t *testing.T) {
		cfg, err := ParseConfig("  ")
		if err != nil {
			t.Fatalf("ParseConfig() error = %v", err)
		}
		if cfg != nil {
			t.Errorf("ParseConfig() = %+v, want nil", cfg)
		}
	})

	t.Run("malformed JSON returns an error", func(t *testing.T) {
		cfg, err := ParseConfig("{not valid json")
		if err == nil {
			t.Fatal("ParseConfig() error = nil, want parse error")
		}
		if cfg != nil {
			t.Errorf("ParseConfig() = %+v, want nil on error", cfg)
		}
	})

	t.Run("full document", func(t *testing.T) {
		cfg, err := ParseConfig(`{
			"shopId": "gid://shopify/Shop/1",
			"customizeName": "New Name",
			"paymentMethod": "Cash on Delivery (COD)",
			"conditions": {
				"cartTotal": [{"greaterOrSmall": "greater_than", "amount": 100}],
				"products": [{"greaterOrSmall": "is", "products": ["gid://shopify/ProductVariant/1"]}],
				"shippingCountry": [{"greaterOrSmall": "is", "country": "in"}]
			}
		}`)
		if err != nil {
			t.Fatalf("ParseConfig() error = %v", err)
		}
		if cfg.PaymentMethod != "Cash on Delivery (COD)" {
			t.Errorf("PaymentMethod = %q", cfg.PaymentMethod)
		}
		if len(cfg.Conditions.CartTotal) != 1 || float64(cfg.Conditions.CartTotal[0].Amount) != 100 {
			t.Errorf("CartTotal = %+v", cfg.Conditions.CartTotal)
		}
		if len(cfg.Conditions.Products) != 1 || len(cfg.Conditions.Products[0].Products) != 1 {
			t.Errorf("Products = %+v", cfg.Conditions.Products)
		}
		if len(cfg.Conditions.ShippingCountry) != 1 || cfg.Conditions.ShippingCountry[0].Country != "in" {
			t.Errorf("ShippingCountry = %+v", cfg.Conditions.ShippingCountry)
		}
	})

	t.Run("amount accepts a string", func(t *testing.T) {
		cfg, err := ParseConfig(`{"conditions": {"cartTotal": [{"amount": "99.5"}]}}`)
		if err != nil {
			t.Fatalf("ParseConfig() error = %v", err)
		}
		if got := float64(cfg.Conditions.CartTotal[0].Amount); got != 99.5 {
			t.Errorf("Amount = %v, want 99.5", got)
		}
	})

	t.Run("unparseable amount decodes to zero", func(t *testing.T) {
		cfg, err := ParseConfig(`{"conditions": {"cartTotal": [{"amount": "lots"}]}}`)
		if err != nil {
			t.Fatalf("ParseConfig() error = %v", err)
		}
		if got := float64(cfg.Conditions.CartTotal[0].Amount); got != 0 {
			t.Errorf("Amount = %v, want 0", got)
		}
	})

	t.Run("absent categories stay empty", func(t *testing.T) {
		cfg, err := ParseConfig(`{"conditions": {}}`)
		if err != nil {
			t.Fatalf("ParseConfig() error = %v", err)
		}
		if len(cfg.Conditions.CartTotal) != 0 || len(cfg.Conditions.Products) != 0 || len(cfg.Conditions.ShippingCountry) != 0 {
			t.Errorf("Conditions = %+v, want all empty", cfg.Conditions)
		}
	})
}

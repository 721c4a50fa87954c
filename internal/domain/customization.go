package domain

import (
	"bytes"
	"strconv"
	"time"
)

// Comparator values accepted in merchant-authored condition entries.
const (
	CompareGreaterThan = "greater_than"
	CompareLessThan    = "less_than"
	CompareIs          = "is"
	CompareIsNot       = "is_not"
)

// Amount is a condition threshold. Merchant configs have carried it both as
// a JSON number and as a string; anything unparseable decodes to zero.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(value)
	return nil
}

// CartTotalCondition fires based on the cart's current total.
type CartTotalCondition struct {
	GreaterOrSmall string `json:"greaterOrSmall"`
	Amount         Amount `json:"amount"`
}

// ProductCondition fires based on product-variant membership in the cart.
type ProductCondition struct {
	GreaterOrSmall string   `json:"greaterOrSmall"`
	Products       []string `json:"products"`
}

// ShippingCountryCondition fires based on the delivery address country.
type ShippingCountryCondition struct {
	GreaterOrSmall string `json:"greaterOrSmall"`
	Country        string `json:"country"`
}

// Conditions groups the three independent condition categories. Any category
// may be absent or empty, in which case it does not constrain the decision.
type Conditions struct {
	CartTotal       []CartTotalCondition       `json:"cartTotal,omitempty"`
	Products        []ProductCondition         `json:"products,omitempty"`
	ShippingCountry []ShippingCountryCondition `json:"shippingCountry,omitempty"`
}

// CustomizationConfig is the merchant-authored configuration document,
// persisted verbatim as a JSON shop metafield and read back by the checkout
// functions on every evaluation.
type CustomizationConfig struct {
	ShopID        string     `json:"shopId,omitempty"`
	CustomizeName string     `json:"customizeName,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	Conditions    Conditions `json:"conditions"`
}

// Customization wraps a configuration document with its persistence identity.
type Customization struct {
	ID         string              `json:"id"`
	ShopDomain string              `json:"shop_domain"`
	Config     CustomizationConfig `json:"config"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

package domain

// RunInput is the payload the checkout runtime supplies for one function
// evaluation: a consistent cart snapshot, the available payment methods, and
// the shop metafield holding the merchant configuration. It is read-only and
// discarded after the call.
type RunInput struct {
	Cart           Cart            `json:"cart"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	Shop           ShopInput       `json:"shop"`
}

// Cart is the checkout-time cart snapshot.
type Cart struct {
	Cost           CartCost        `json:"cost"`
	Lines          []CartLine      `json:"lines"`
	DeliveryGroups []DeliveryGroup `json:"deliveryGroups"`
}

// CartCost carries the cart's cost summary.
type CartCost struct {
	TotalAmount Money `json:"totalAmount"`
}

// Money is a decimal amount in the shop currency, serialized as a string.
type Money struct {
	Amount string `json:"amount"`
}

// CartLine is a single line item referencing its merchandise.
type CartLine struct {
	Merchandise Merchandise `json:"merchandise"`
}

// Merchandise identifies the product variant behind a cart line.
type Merchandise struct {
	Typename string     `json:"__typename"`
	ID       string     `json:"id"`
	Product  ProductRef `json:"product"`
}

// ProductRef references the parent product of a variant.
type ProductRef struct {
	ID string `json:"id"`
}

// DeliveryGroup is one shipment destination with its offered options.
type DeliveryGroup struct {
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress,omitempty"`
	DeliveryOptions []DeliveryOption `json:"deliveryOptions"`
}

// DeliveryAddress carries the destination country for a delivery group.
type DeliveryAddress struct {
	CountryCode string `json:"countryCode"`
}

// DeliveryOption is a shipping method offered for a delivery group.
type DeliveryOption struct {
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// PaymentMethod is an available payment method at checkout.
type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShopInput carries the shop-scoped metafield the runtime resolved for this
// function. The metafield is absent when nothing has been configured.
type ShopInput struct {
	Metafield *Metafield `json:"metafield"`
}

// Metafield is the raw metafield value as supplied by the runtime.
type Metafield struct {
	Value string `json:"value"`
}

package domain

// ProductSummary is the slim product shape returned to the admin UI's
// product picker. IDs use the gid:// form the checkout functions receive.
type ProductSummary struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	VariantIDs []string `json:"variantIds,omitempty"`
}

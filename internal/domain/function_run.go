package domain

import "time"

// Function variant identifiers, used for routing, metrics, and audit logs.
const (
	VariantHidePayment   = "hide-payment"
	VariantRenamePayment = "rename-payment"
	VariantHideDelivery  = "hide-delivery"
)

// FunctionRun is a diagnostic record of one function evaluation. It is
// written after the fact and never read back on the evaluation path, so the
// functions themselves stay stateless.
type FunctionRun struct {
	ID             string        `json:"id"`
	ShopDomain     string        `json:"shop_domain"`
	Variant        string        `json:"variant"`
	OperationCount int           `json:"operation_count"`
	Duration       time.Duration `json:"duration"`
	CreatedAt      time.Time     `json:"created_at"`
}

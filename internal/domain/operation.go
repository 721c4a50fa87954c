package domain

// HideOperation removes a payment method or delivery option from checkout.
// Exactly one of the two fields is set, matching the runtime's wire format.
type HideOperation struct {
	PaymentMethodID      string `json:"paymentMethodId,omitempty"`
	DeliveryOptionHandle string `json:"deliveryOptionHandle,omitempty"`
}

// RenameOperation changes the display name of a payment method.
type RenameOperation struct {
	PaymentMethodID string `json:"paymentMethodId"`
	Name            string `json:"name"`
}

// Operation is one declarative instruction returned to the checkout runtime.
// The runtime applies it; the function never mutates checkout state directly.
type Operation struct {
	Hide   *HideOperation   `json:"hide,omitempty"`
	Rename *RenameOperation `json:"rename,omitempty"`
}

// FunctionResult is the complete output of one function evaluation.
type FunctionResult struct {
	Operations []Operation `json:"operations"`
}

// NoChanges returns an empty, well-formed result. Every failure path inside
// the function core degrades to this value so checkout is never blocked.
func NoChanges() *FunctionResult {
	return &FunctionResult{Operations: []Operation{}}
}

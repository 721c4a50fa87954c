package function

import "checkout-customizer-layer/internal/domain"

// defaultHiddenDeliveryTitle is the stock title hidden by the hide-delivery
// variant.
const defaultHiddenDeliveryTitle = "Standard"

// HideDelivery runs the delivery-customization variant: every delivery
// option, in every delivery group, whose title exactly equals the configured
// target yields one hide operation. The variant is a pure title filter; it
// never consults the condition rules, so a multi-destination cart can emit
// several operations.
func (r *Runner) HideDelivery(input *domain.RunInput) *domain.FunctionResult {
	if input == nil {
		return domain.NoChanges()
	}

	result := domain.NoChanges()
	for _, group := range input.Cart.DeliveryGroups {
		for _, option := range group.DeliveryOptions {
			if option.Title != r.opts.HiddenDeliveryTitle {
				continue
			}
			result.Operations = append(result.Operations, domain.Operation{
				Hide: &domain.HideOperation{DeliveryOptionHandle: option.Handle},
			})
		}
	}
	return result
}

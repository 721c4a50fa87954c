package function

import "checkout-customizer-layer/internal/domain"

// Rename targets for the rename-payment variant. The trigger is
// presence-only: the variant never consults the condition rules.
const (
	renameTargetName  = "Cash on Delivery (COD)"
	renameReplacement = "Cash On Delivery 20%"
)

// RenamePayment runs the rename variant: every payment method whose display
// name exactly equals the target is renamed to the replacement.
func (r *Runner) RenamePayment(input *domain.RunInput) *domain.FunctionResult {
	if input == nil {
		return domain.NoChanges()
	}

	result := domain.NoChanges()
	for _, method := range input.PaymentMethods {
		if method.Name != renameTargetName {
			continue
		}
		result.Operations = append(result.Operations, domain.Operation{
			Rename: &domain.RenameOperation{
				PaymentMethodID: method.ID,
				Name:            renameReplacement,
			},
		})
	}
	return result
}

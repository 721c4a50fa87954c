package function

import (
	"strings"

	"checkout-customizer-layer/internal/domain"
)

// codNameFragment is the stock match target for the hide-payment variant.
// The configured paymentMethod name is accepted by the admin form but not
// consulted here unless UseConfiguredPaymentTarget is set.
const codNameFragment = "Cash on Delivery"

// HidePayment runs the payment-customization variant: when any configured
// exclusion condition is satisfied, hide the first payment method whose
// display name contains the match target (case-sensitive substring).
func (r *Runner) HidePayment(input *domain.RunInput) *domain.FunctionResult {
	if input == nil || input.Shop.Metafield == nil || input.Shop.Metafield.Value == "" {
		return domain.NoChanges()
	}

	cfg, err := ParseConfig(input.Shop.Metafield.Value)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Ignoring malformed customization metafield")
		return domain.NoChanges()
	}
	if cfg == nil {
		return domain.NoChanges()
	}

	verdicts := Evaluate(cfg, &input.Cart)
	if !verdicts.ShouldAct() {
		return domain.NoChanges()
	}

	target := codNameFragment
	if r.opts.UseConfiguredPaymentTarget && cfg.PaymentMethod != "" {
		target = cfg.PaymentMethod
	}

	for _, method := range input.PaymentMethods {
		if strings.Contains(method.Name, target) {
			return &domain.FunctionResult{
				Operations: []domain.Operation{
					{Hide: &domain.HideOperation{PaymentMethodID: method.ID}},
				},
			}
		}
	}

	return domain.NoChanges()
}

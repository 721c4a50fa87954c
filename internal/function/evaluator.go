package function

import (
	"strconv"

	"checkout-customizer-layer/internal/domain"
)

// merchandiseVariant is the merchandise typename carrying a product variant.
const merchandiseVariant = "ProductVariant"

// Verdicts holds the per-category outcomes of one evaluation. Each verdict
// answers "is this exclusion condition satisfied", not "is the plain
// comparison true" — see cartTotalVerdict for the inverted polarity.
type Verdicts struct {
	CartTotal       bool
	Products        bool
	ShippingCountry bool
}

// ShouldAct combines the three verdicts with a plain OR: any single satisfied
// exclusion condition is enough to trigger the action.
func (v Verdicts) ShouldAct() bool {
	return v.CartTotal || v.Products || v.ShippingCountry
}

// Evaluate computes one verdict per configured condition category against
// the cart snapshot. Categories are independent; absent categories
// contribute false. Pure function of its inputs.
func Evaluate(cfg *domain.CustomizationConfig, cart *domain.Cart) Verdicts {
	if cfg == nil || cart == nil {
		return Verdicts{}
	}
	return Verdicts{
		CartTotal:       cartTotalVerdict(cfg.Conditions.CartTotal, cart),
		Products:        productsVerdict(cfg.Conditions.Products, cart),
		ShippingCountry: shippingCountryVerdict(cfg.Conditions.ShippingCountry, cart),
	}
}

// cartTotalVerdict checks the first cart-total entry. The comparison is
// deliberately inverted: a "greater_than 100" rule means "hide until the
// cart total exceeds 100", so the verdict is true while total <= threshold.
// "less_than" mirrors that. Only the first entry is consulted.
func cartTotalVerdict(entries []domain.CartTotalCondition, cart *domain.Cart) bool {
	if len(entries) == 0 {
		return false
	}
	entry := entries[0]

	comparator := entry.GreaterOrSmall
	if comparator == "" {
		comparator = domain.CompareGreaterThan
	}

	total := parseDecimal(cart.Cost.TotalAmount.Amount)
	threshold := float64(entry.Amount)

	switch comparator {
	case domain.CompareGreaterThan:
		return total <= threshold
	case domain.CompareLessThan:
		return total >= threshold
	}
	return false
}

// productsVerdict checks the first products entry against the cart lines'
// product-variant identifiers. "is" fires when any cart line is in the
// configured set; "is_not" fires when none are.
func productsVerdict(entries []domain.ProductCondition, cart *domain.Cart) bool {
	if len(entries) == 0 {
		return false
	}
	entry := entries[0]

	comparator := entry.GreaterOrSmall
	if comparator == "" {
		comparator = domain.CompareIs
	}

	configured := make(map[string]struct{}, len(entry.Products))
	for _, id := range entry.Products {
		configured[id] = struct{}{}
	}

	anyMatch := false
	for _, line := range cart.Lines {
		if line.Merchandise.Typename != merchandiseVariant {
			continue
		}
		if _, ok := configured[line.Merchandise.ID]; ok {
			anyMatch = true
			break
		}
	}

	switch comparator {
	case domain.CompareIs:
		return anyMatch
	case domain.CompareIsNot:
		return !anyMatch
	}
	return false
}

// shippingCountryVerdict checks the first shipping-country entry against the
// delivery groups' address country codes. The configured set holds at most
// one country but is treated as a set for symmetry with "is_not".
// Comparison is case-sensitive.
func shippingCountryVerdict(entries []domain.ShippingCountryCondition, cart *domain.Cart) bool {
	if len(entries) == 0 {
		return false
	}
	entry := entries[0]

	comparator := entry.GreaterOrSmall
	if comparator == "" {
		comparator = domain.CompareIs
	}

	configured := make(map[string]struct{}, 1)
	if entry.Country != "" {
		configured[entry.Country] = struct{}{}
	}

	anyMatch := false
	for _, group := range cart.DeliveryGroups {
		if group.DeliveryAddress == nil || group.DeliveryAddress.CountryCode == "" {
			continue
		}
		if _, ok := configured[group.DeliveryAddress.CountryCode]; ok {
			anyMatch = true
			break
		}
	}

	switch comparator {
	case domain.CompareIs:
		return anyMatch
	case domain.CompareIsNot:
		return !anyMatch
	}
	return false
}

// parseDecimal reads a runtime decimal string. Parse failures are treated as
// zero rather than surfaced, per the availability-first error policy.
func parseDecimal(s string) float64 {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}

// Package function implements the checkout customization functions: pure,
// stateless evaluators invoked once per checkout recalculation. Each run
// parses the merchant configuration from the shop metafield, evaluates the
// configured conditions against the cart snapshot, and emits declarative
// hide/rename operations. Every failure path degrades to an empty operation
// list; nothing in this package may panic or error past its boundary, since
// an aborted function would abort checkout for the customer.
package function

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"checkout-customizer-layer/internal/domain"
)

// ParseConfig decodes a merchant configuration document from its raw
// metafield value. An empty value is the valid "nothing configured" state
// and returns (nil, nil); malformed JSON returns an error for the caller to
// log and absorb.
func ParseConfig(value string) (*domain.CustomizationConfig, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var cfg domain.CustomizationConfig
	if err := json.Unmarshal([]byte(value), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse customization config: %w", err)
	}
	return &cfg, nil
}

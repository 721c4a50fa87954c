package function

import "github.com/rs/zerolog"

// Options controls the per-variant behaviors that are fixed in the stock
// deployment but overridable for shops that need them.
type Options struct {
	// UseConfiguredPaymentTarget matches the hide-payment target against the
	// configured paymentMethod name instead of the stock "Cash on Delivery"
	// fragment. Off by default: the stock behavior ignores the configured
	// name, and existing shops depend on that.
	UseConfiguredPaymentTarget bool

	// HiddenDeliveryTitle is the delivery option title hidden by the
	// hide-delivery variant.
	HiddenDeliveryTitle string
}

// DefaultOptions returns the stock deployment behavior.
func DefaultOptions() Options {
	return Options{
		HiddenDeliveryTitle: defaultHiddenDeliveryTitle,
	}
}

// Runner evaluates the three function variants. It holds no per-invocation
// state; the logger is only used as a diagnostic sink for malformed
// configurations.
type Runner struct {
	logger zerolog.Logger
	opts   Options
}

// NewRunner creates a runner with the given options. A zero
// HiddenDeliveryTitle falls back to the stock title.
func NewRunner(logger zerolog.Logger, opts Options) *Runner {
	if opts.HiddenDeliveryTitle == "" {
		opts.HiddenDeliveryTitle = defaultHiddenDeliveryTitle
	}
	return &Runner{
		logger: logger,
		opts:   opts,
	}
}

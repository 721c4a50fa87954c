package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/domain"
	"checkout-customizer-layer/internal/function"
	"checkout-customizer-layer/internal/metrics"
	"checkout-customizer-layer/internal/ports"
)

// FunctionService runs the checkout function variants and records metrics
// and an audit trail. Evaluation itself stays in the function package and
// never fails: any error path inside a run degrades to zero operations.
type FunctionService struct {
	runner  *function.Runner
	runs    ports.FunctionRunRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewFunctionService creates a new function service
func NewFunctionService(
	runner *function.Runner,
	runs ports.FunctionRunRepository,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *FunctionService {
	return &FunctionService{
		runner:  runner,
		runs:    runs,
		metrics: metrics,
		logger:  logger,
	}
}

// Run evaluates one function variant against the given checkout input.
// shopDomain is a caller-supplied hint used only for the audit trail; it may
// be empty.
func (s *FunctionService) Run(ctx context.Context, shopDomain string, variant string, input *domain.RunInput) *domain.FunctionResult {
	start := time.Now()

	var result *domain.FunctionResult
	switch variant {
	case domain.VariantRenamePayment:
		result = s.runner.RenamePayment(input)
	case domain.VariantHideDelivery:
		result = s.runner.HideDelivery(input)
	default:
		result = s.runner.HidePayment(input)
	}
	duration := time.Since(start)

	outcome := "no_op"
	if len(result.Operations) > 0 {
		outcome = "acted"
	}
	s.metrics.FunctionRunsTotal.WithLabelValues(variant, outcome).Inc()
	s.metrics.FunctionRunDuration.WithLabelValues(variant).Observe(duration.Seconds())
	for _, op := range result.Operations {
		if op.Hide != nil {
			s.metrics.OperationsEmittedTotal.WithLabelValues(variant, "hide").Inc()
		}
		if op.Rename != nil {
			s.metrics.OperationsEmittedTotal.WithLabelValues(variant, "rename").Inc()
		}
	}

	s.logger.Debug().
		Str("shop", shopDomain).
		Str("variant", variant).
		Int("operations", len(result.Operations)).
		Dur("duration", duration).
		Msg("Function run completed")

	// Audit logging is best-effort; a storage failure must not affect the
	// function response.
	run := &domain.FunctionRun{
		ID:             uuid.New().String(),
		ShopDomain:     shopDomain,
		Variant:        variant,
		OperationCount: len(result.Operations),
		Duration:       duration,
		CreatedAt:      time.Now(),
	}
	if err := s.runs.LogRun(ctx, run); err != nil {
		s.logger.Warn().Err(err).Str("variant", variant).Msg("Failed to log function run")
	}

	return result
}

// ListRuns returns the most recent audit entries for a shop.
func (s *FunctionService) ListRuns(ctx context.Context, shopDomain string, limit int64) ([]*domain.FunctionRun, error) {
	return s.runs.ListRuns(ctx, shopDomain, limit)
}

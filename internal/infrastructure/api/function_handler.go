// Package api contains the HTTP handlers for the function run and admin
// configuration endpoints.
package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/application"
	"checkout-customizer-layer/internal/domain"
)

// FunctionHandler serves the checkout function run endpoints. Each variant
// receives the checkout input document and responds with an operations list,
// never an evaluation error.
type FunctionHandler struct {
	functionService *application.FunctionService
	logger          zerolog.Logger
}

// NewFunctionHandler creates a new function handler
func NewFunctionHandler(functionService *application.FunctionService, logger zerolog.Logger) *FunctionHandler {
	return &FunctionHandler{
		functionService: functionService,
		logger:          logger,
	}
}

// HidePayment handles POST /functions/payment-customization/run
func (h *FunctionHandler) HidePayment(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, domain.VariantHidePayment)
}

// RenamePayment handles POST /functions/payment-rename/run
func (h *FunctionHandler) RenamePayment(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, domain.VariantRenamePayment)
}

// HideDelivery handles POST /functions/delivery-customization/run
func (h *FunctionHandler) HideDelivery(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, domain.VariantHideDelivery)
}

func (h *FunctionHandler) run(w http.ResponseWriter, r *http.Request, variant string) {
	var input domain.RunInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn().Err(err).Str("variant", variant).Msg("Invalid function input")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Run requests carry no authenticated identity; the shop header is a
	// hint for the audit trail only.
	shopDomain := r.Header.Get("X-Shopify-Shop-Domain")

	result := h.functionService.Run(r.Context(), shopDomain, variant, &input)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error().Err(err).Str("variant", variant).Msg("Failed to encode function result")
	}
}

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/application"
	"checkout-customizer-layer/internal/domain"
)

const defaultRunListLimit = 50

// CustomizationHandler serves the authenticated admin API for managing a
// shop's customization rules.
type CustomizationHandler struct {
	customizationService *application.CustomizationService
	functionService      *application.FunctionService
	logger               zerolog.Logger
}

// NewCustomizationHandler creates a new customization handler
func NewCustomizationHandler(
	customizationService *application.CustomizationService,
	functionService *application.FunctionService,
	logger zerolog.Logger,
) *CustomizationHandler {
	return &CustomizationHandler{
		customizationService: customizationService,
		functionService:      functionService,
		logger:               logger,
	}
}

// shopFromRequest resolves the target shop and enforces that the
// authenticated session token was issued for it.
func (h *CustomizationHandler) shopFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	shop := chi.URLParam(r, "shop")
	if shop == "" {
		http.Error(w, "shop parameter is required", http.StatusBadRequest)
		return "", false
	}

	if authenticated := domain.GetShopDomainFromContext(r.Context()); authenticated != "" && authenticated != shop {
		h.logger.Warn().
			Str("shop", shop).
			Str("authenticated", authenticated).
			Msg("Session token shop mismatch")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return "", false
	}

	return shop, true
}

// Get handles GET /api/v1/customizations/{shop}
func (h *CustomizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	shop, ok := h.shopFromRequest(w, r)
	if !ok {
		return
	}

	customization, err := h.customizationService.Get(r.Context(), shop)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to get customization")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if customization == nil {
		http.Error(w, "Customization not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, customization)
}

// Put handles PUT /api/v1/customizations/{shop}
func (h *CustomizationHandler) Put(w http.ResponseWriter, r *http.Request) {
	shop, ok := h.shopFromRequest(w, r)
	if !ok {
		return
	}

	var config domain.CustomizationConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customization, err := h.customizationService.Save(r.Context(), shop, config)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to save customization")
		http.Error(w, "Failed to save customization", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, customization)
}

// Delete handles DELETE /api/v1/customizations/{shop}
func (h *CustomizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shop, ok := h.shopFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.customizationService.Delete(r.Context(), shop); err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to delete customization")
		http.Error(w, "Failed to delete customization", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRuns handles GET /api/v1/customizations/{shop}/runs
func (h *CustomizationHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	shop, ok := h.shopFromRequest(w, r)
	if !ok {
		return
	}

	limit := int64(defaultRunListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	runs, err := h.functionService.ListRuns(r.Context(), shop, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to list function runs")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// Products handles GET /api/v1/products/{shop}
func (h *CustomizationHandler) Products(w http.ResponseWriter, r *http.Request) {
	shop, ok := h.shopFromRequest(w, r)
	if !ok {
		return
	}

	products, err := h.customizationService.Products(r.Context(), shop)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to list products")
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

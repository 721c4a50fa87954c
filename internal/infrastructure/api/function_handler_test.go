package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/application"
	"checkout-customizer-layer/internal/domain"
	"checkout-customizer-layer/internal/function"
	"checkout-customizer-layer/internal/metrics"
)

type memoryRunRepo struct {
	runs []*domain.FunctionRun
}

func (r *memoryRunRepo) LogRun(ctx context.Context, run *domain.FunctionRun) error {
	r.runs = append(r.runs, run)
	return nil
}

func (r *memoryRunRepo) ListRuns(ctx context.Context, shopDomain string, limit int64) ([]*domain.FunctionRun, error) {
	return r.runs, nil
}

func newTestHandler(repo *memoryRunRepo) *FunctionHandler {
	runner := function.NewRunner(zerolog.Nop(), function.DefaultOptions())
	svc := application.NewFunctionService(runner, repo, metrics.New(), zerolog.Nop())
	return NewFunctionHandler(svc, zerolog.Nop())
}

func TestFunctionHandlerRejectsInvalidBody(t *testing.T) {
	handler := newTestHandler(&memoryRunRepo{})

	req := httptest.NewRequest(http.MethodPost, "/functions/payment-customization/run", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.HidePayment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestFunctionHandlerEmptyInputReturnsNoOperations(t *testing.T) {
	handler := newTestHandler(&memoryRunRepo{})

	req := httptest.NewRequest(http.MethodPost, "/functions/payment-customization/run", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	handler.HidePayment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var result domain.FunctionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Operations == nil {
		t.Error("operations = null, want empty array")
	}
	if len(result.Operations) != 0 {
		t.Errorf("len(operations) = %d, want 0", len(result.Operations))
	}
}

func TestFunctionHandlerRenamesMatchingMethod(t *testing.T) {
	repo := &memoryRunRepo{}
	handler := newTestHandler(repo)

	input := domain.RunInput{
		PaymentMethods: []domain.PaymentMethod{
			{ID: "gid://shopify/PaymentCustomizationPaymentMethod/1", Name: "Cash on Delivery (COD)"},
		},
	}
	body, err := json.Marshal(input)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/functions/payment-rename/run", strings.NewReader(string(body)))
	req.Header.Set("X-Shopify-Shop-Domain", "demo.myshopify.com")
	rec := httptest.NewRecorder()
	handler.RenamePayment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var result domain.FunctionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Operations) != 1 || result.Operations[0].Rename == nil {
		t.Fatalf("operations = %+v, want one rename operation", result.Operations)
	}

	// The run is audited with the shop hint from the header.
	if len(repo.runs) != 1 {
		t.Fatalf("logged %d runs, want 1", len(repo.runs))
	}
	if repo.runs[0].ShopDomain != "demo.myshopify.com" {
		t.Errorf("audited shop = %q, want %q", repo.runs[0].ShopDomain, "demo.myshopify.com")
	}
	if repo.runs[0].Variant != domain.VariantRenamePayment {
		t.Errorf("audited variant = %q, want %q", repo.runs[0].Variant, domain.VariantRenamePayment)
	}
}

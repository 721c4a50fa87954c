package function

import (
	"testing"

	"checkout-customizer-layer/internal/domain"
)

func TestRenamePayment(t *testing.T) {
	tests := []struct {
		name        string
		methods     []domain.PaymentMethod
		wantRenames []string
	}{
		{
			name:        "exact match is renamed",
			methods:     []domain.PaymentMethod{{ID: "gid://1", Name: "Cash on Delivery (COD)"}},
			wantRenames: []string{"gid://1"},
		},
		{
			name: "only exact matches are touched",
			methods: []domain.PaymentMethod{
				{ID: "gid://1", Name: "Cash on Delivery"},
				{ID: "gid://2", Name: "Cash on Delivery (COD)"},
				{ID: "gid://3", Name: "Credit card"},
			},
			wantRenames: []string{"gid://2"},
		},
		{
			name: "every exact match is renamed",
			methods: []domain.PaymentMethod{
				{ID: "gid://1", Name: "Cash on Delivery (COD)"},
				{ID: "gid://2", Name: "Cash on Delivery (COD)"},
			},
			wantRenames: []string{"gid://1", "gid://2"},
		},
		{
			name:        "no methods is a no-op",
			methods:     nil,
			wantRenames: nil,
		},
	}

	runner := testRunner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runner.RenamePayment(&domain.RunInput{PaymentMethods: tt.methods})
			if result == nil || result.Operations == nil {
				t.Fatal("result operations must always be a well-formed list")
			}
			if len(result.Operations) != len(tt.wantRenames) {
				t.Fatalf("got %d operations, want %d", len(result.Operations), len(tt.wantRenames))
			}
			for i, op := range result.Operations {
				if op.Rename == nil {
					t.Fatalf("operation %d is not a rename: %+v", i, op)
				}
				if op.Rename.PaymentMethodID != tt.wantRenames[i] {
					t.Errorf("operation %d renamed %q, want %q", i, op.Rename.PaymentMethodID, tt.wantRenames[i])
				}
				if op.Rename.Name != "Cash On Delivery 20%" {
					t.Errorf("operation %d new name = %q", i, op.Rename.Name)
				}
			}
		})
	}
}

func TestRenamePaymentIgnoresConditions(t *testing.T) {
	// The rename variant is presence-triggered: a metafield whose conditions
	// would all clear must not suppress the rename.
	input := runInput(
		`{"conditions":{"cartTotal":[{"greaterOrSmall":"greater_than","amount":0}]}}`,
		*cartWithTotal("500.00"),
		domain.PaymentMethod{ID: "gid://1", Name: "Cash on Delivery (COD)"},
	)

	result := testRunner().RenamePayment(input)
	if len(result.Operations) != 1 {
		t.Fatalf("got %d operations, want 1", len(result.Operations))
	}
}

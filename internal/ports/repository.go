package ports

import (
	"context"

	"checkout-customizer-layer/internal/domain"
)

// CustomizationRepository defines the interface for configuration document
// persistence. Saves are full overwrites keyed by shop domain.
type CustomizationRepository interface {
	Save(ctx context.Context, customization *domain.Customization) error
	GetByShop(ctx context.Context, shopDomain string) (*domain.Customization, error)
	DeleteByShop(ctx context.Context, shopDomain string) error
}

// ShopRepository defines the interface for installed-shop persistence.
type ShopRepository interface {
	SaveShop(ctx context.Context, shop *domain.Shop) error
	GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error)
	DeleteShop(ctx context.Context, shopDomain string) error
	ListShops(ctx context.Context) ([]*domain.Shop, error)
}

// FunctionRunRepository defines the interface for the function-run audit log.
type FunctionRunRepository interface {
	LogRun(ctx context.Context, run *domain.FunctionRun) error
	ListRuns(ctx context.Context, shopDomain string, limit int64) ([]*domain.FunctionRun, error)
}

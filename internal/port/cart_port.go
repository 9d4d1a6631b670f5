package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// CartAPI is the remote cart resource. Write operations return the platform's
// authoritative summary; GetCart returns the full cart.
type CartAPI interface {
	CreateCart(ctx context.Context, lines []domain.LineInput) (domain.CartSummary, error)
	AddLines(ctx context.Context, cartID string, lines []domain.LineInput) (domain.CartSummary, error)
	UpdateLines(ctx context.Context, cartID string, lines []domain.LineUpdate) (domain.CartSummary, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (domain.CartSummary, error)
	GetCart(ctx context.Context, cartID string) (domain.Cart, error)
}

type Catalog interface {
	ListProducts(ctx context.Context, limit int) ([]domain.ProductCard, error)
	GetProduct(ctx context.Context, handle string) (domain.Product, error)
}

// HealthChecker reports whether the platform answers with the configured credentials.
type HealthChecker interface {
	Health(ctx context.Context) domain.Health
}

type CommercePlatform interface {
	CartAPI
	Catalog
	HealthChecker
}

package ports

import (
	"context"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
)

// OrderFinder resolves an order id to the full order record.
// The consumer tolerates absent orders, so implementations return (nil, nil)
// when the id is unknown.
type OrderFinder interface {
	GetOrder(ctx context.Context, orderID int64) (*domain.CardOrder, error)
}

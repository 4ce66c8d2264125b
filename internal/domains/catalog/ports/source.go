package ports

import (
	"context"

	"github.com/pioneercards/storefront/internal/domains/catalog/domain"
)

// Source supplies the one-time catalog load performed at startup.
type Source interface {
	Load(ctx context.Context) ([]domain.TradingCard, error)
}

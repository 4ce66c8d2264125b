package ports

import (
	"context"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
)

// CartService defines the cart use cases exposed to adapters.
type CartService interface {
	SaveCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	GetCart(ctx context.Context, id string) (*domain.Cart, error)
	RemoveCart(ctx context.Context, id string) error
	AddItemToCart(ctx context.Context, cartID string, item domain.Item) (*domain.Cart, error)
	RemoveItemFromCart(ctx context.Context, cartID string, itemID int64) (*domain.Cart, error)
	UpdateCartItem(ctx context.Context, cartID string, item domain.Item) (*domain.Cart, error)
	CartsWithoutOrders(ctx context.Context) ([]*domain.Cart, error)
}

// OrderService defines the order use cases exposed to adapters.
type OrderService interface {
	SaveOrder(ctx context.Context, order *domain.CardOrder) (*domain.CardOrder, error)
	GetOrder(ctx context.Context, id int64) (*domain.CardOrder, error)
}

package ports

import (
	"context"
	"errors"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
)

var (
	// ErrNotFound covers carts and orders alike; callers that need to know
	// which entity was missing already know which call they made.
	ErrNotFound = errors.New("not found")
	// ErrMissingCart signals an order with no cart reference at all.
	ErrMissingCart = errors.New("order has no cart reference")
)

// Repository persists carts and orders. The two live in one port because the
// carts-without-orders query is a set difference over both collections and
// must run store-side as a single query.
type Repository interface {
	SaveCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	GetCart(ctx context.Context, id string) (*domain.Cart, error)
	// RemoveCart deletes the cart. Deleting an absent id returns ErrNotFound
	// so sweep callers can tell "already gone" from "failed".
	RemoveCart(ctx context.Context, id string) error
	// FindCartsWithoutOrders returns every cart no order references, ordered
	// by cart id so repeated calls against unchanged state are deterministic.
	FindCartsWithoutOrders(ctx context.Context) ([]*domain.Cart, error)

	SaveOrder(ctx context.Context, order *domain.CardOrder) (*domain.CardOrder, error)
	// GetOrder returns (nil, nil) when the order does not exist.
	GetOrder(ctx context.Context, id int64) (*domain.CardOrder, error)
}

package application

import (
	"context"
	"errors"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	"github.com/pioneercards/storefront/internal/domains/checkout/ports"
)

// CartLookup is the slice of the cart service the order flow needs.
type CartLookup interface {
	GetCart(ctx context.Context, id string) (*domain.Cart, error)
}

// OrderService orchestrates the order use cases.
type OrderService struct {
	repo  ports.Repository
	carts CartLookup
}

// NewOrderService wires the order service with its repository and the cart
// lookup used to resolve authoritative cart state.
func NewOrderService(repo ports.Repository, carts CartLookup) *OrderService {
	return &OrderService{repo: repo, carts: carts}
}

// SaveOrder persists the order after replacing its cart reference with the
// store's authoritative cart. Only the cart id is read from the incoming
// order; stale embedded cart fields are discarded. An order with no cart
// reference at all fails before any store access, and an unknown cart id
// propagates ports.ErrNotFound without touching the order store.
func (s *OrderService) SaveOrder(ctx context.Context, order *domain.CardOrder) (*domain.CardOrder, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if order.Cart == nil || order.Cart.ID == "" {
		return nil, ports.ErrMissingCart
	}
	cart, err := s.carts.GetCart(ctx, order.Cart.ID)
	if err != nil {
		return nil, err
	}
	order.Cart = cart
	return s.repo.SaveOrder(ctx, order)
}

// GetOrder returns the order, or (nil, nil) when it does not exist.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.CardOrder, error) {
	return s.repo.GetOrder(ctx, id)
}

var _ ports.OrderService = (*OrderService)(nil)

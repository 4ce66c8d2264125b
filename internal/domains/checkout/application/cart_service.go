package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	"github.com/pioneercards/storefront/internal/domains/checkout/ports"
)

// CartService orchestrates the cart use cases.
type CartService struct {
	repo ports.Repository
}

// NewCartService wires the cart service with its repository.
func NewCartService(repo ports.Repository) *CartService {
	return &CartService{repo: repo}
}

// SaveCart upserts the cart, assigning a fresh id when the caller left it
// empty, and returns the persisted representation.
func (s *CartService) SaveCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	for _, item := range cart.Items {
		if err := item.Validate(); err != nil {
			return nil, mapError(err)
		}
	}
	return s.repo.SaveCart(ctx, cart)
}

// GetCart loads a cart, failing with ports.ErrNotFound when it does not exist.
func (s *CartService) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	return s.repo.GetCart(ctx, id)
}

// RemoveCart deletes the cart unconditionally. Removing an absent id surfaces
// ports.ErrNotFound.
func (s *CartService) RemoveCart(ctx context.Context, id string) error {
	return s.repo.RemoveCart(ctx, id)
}

// AddItemToCart loads the cart, appends the item, and persists.
func (s *CartService) AddItemToCart(ctx context.Context, cartID string, item domain.Item) (*domain.Cart, error) {
	if err := item.Validate(); err != nil {
		return nil, mapError(err)
	}
	cart, err := s.repo.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.AddItem(item)
	return s.repo.SaveCart(ctx, cart)
}

// RemoveItemFromCart filters out any item with the given id. An absent item id
// is a no-op; the cart is persisted unchanged either way, which makes the call
// idempotent.
func (s *CartService) RemoveItemFromCart(ctx context.Context, cartID string, itemID int64) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(itemID)
	return s.repo.SaveCart(ctx, cart)
}

// UpdateCartItem replaces the matching item in place. Updating an id that is
// not in the cart is a no-op rather than an insert; the item count never
// changes.
func (s *CartService) UpdateCartItem(ctx context.Context, cartID string, item domain.Item) (*domain.Cart, error) {
	if err := item.Validate(); err != nil {
		return nil, mapError(err)
	}
	cart, err := s.repo.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.UpdateItem(item)
	return s.repo.SaveCart(ctx, cart)
}

// CartsWithoutOrders returns every orphaned cart, i.e. carts no stored order
// references.
func (s *CartService) CartsWithoutOrders(ctx context.Context) ([]*domain.Cart, error) {
	return s.repo.FindCartsWithoutOrders(ctx)
}

var _ ports.CartService = (*CartService)(nil)

package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	"github.com/pioneercards/storefront/internal/domains/checkout/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory cart/order persistence adapter used for tests and
// as the no-DSN fallback. A single mutex serializes writers, which gives the
// same per-entity guarantee the transactional store provides.
type Repository struct {
	mu          sync.RWMutex
	carts       map[string]*domain.Cart
	orders      map[int64]*domain.CardOrder
	nextOrderID int64
}

func NewRepository() *Repository {
	return &Repository{
		carts:  map[string]*domain.Cart{},
		orders: map[int64]*domain.CardOrder{},
	}
}

func (r *Repository) SaveCart(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil || cart.ID == "" {
		return nil, errors.New("cart id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.ID] = cart.Clone()
	return cart.Clone(), nil
}

func (r *Repository) GetCart(_ context.Context, id string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.carts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cart.Clone(), nil
}

func (r *Repository) RemoveCart(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.carts, id)
	return nil
}

// FindCartsWithoutOrders computes the set difference with a hash set of
// referenced cart ids, ordered by cart id for deterministic output.
func (r *Repository) FindCartsWithoutOrders(_ context.Context) ([]*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	referenced := make(map[string]struct{}, len(r.orders))
	for _, order := range r.orders {
		if order.Cart != nil {
			referenced[order.Cart.ID] = struct{}{}
		}
	}
	orphans := make([]*domain.Cart, 0)
	for id, cart := range r.carts {
		if _, ok := referenced[id]; !ok {
			orphans = append(orphans, cart.Clone())
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].ID < orphans[j].ID })
	return orphans, nil
}

func (r *Repository) SaveOrder(_ context.Context, order *domain.CardOrder) (*domain.CardOrder, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == 0 {
		r.nextOrderID++
		order.ID = r.nextOrderID
	} else if order.ID > r.nextOrderID {
		r.nextOrderID = order.ID
	}
	r.orders[order.ID] = order.Clone()
	return order.Clone(), nil
}

func (r *Repository) GetOrder(_ context.Context, id int64) (*domain.CardOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return order.Clone(), nil
}

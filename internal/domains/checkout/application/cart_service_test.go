package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pioneercards/storefront/internal/domains/checkout/adapters/memory"
	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	"github.com/pioneercards/storefront/internal/domains/checkout/ports"
)

func testItem(id int64, name string) domain.Item {
	return domain.Item{ID: id, Name: name, Price: decimal.RequireFromString("9.99"), Quantity: 1}
}

func seedCart(t *testing.T, svc *CartService, id string) *domain.Cart {
	t.Helper()
	person := "user123"
	cart, err := svc.SaveCart(context.Background(), &domain.Cart{ID: id, PersonID: &person})
	require.NoError(t, err)
	return cart
}

func TestSaveCart_AssignsIDWhenEmpty(t *testing.T) {
	svc := NewCartService(memory.NewRepository())
	cart, err := svc.SaveCart(context.Background(), &domain.Cart{})
	require.NoError(t, err)
	require.NotEmpty(t, cart.ID)
}

func TestSaveCart_RejectsNegativeItemPrice(t *testing.T) {
	svc := NewCartService(memory.NewRepository())
	_, err := svc.SaveCart(context.Background(), &domain.Cart{
		ID:    "cart1",
		Items: []domain.Item{{ID: 1, Name: "Card pack", Price: decimal.RequireFromString("-1")}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCart_NotFound(t *testing.T) {
	svc := NewCartService(memory.NewRepository())
	_, err := svc.GetCart(context.Background(), "nonexistent")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAddItemToCart(t *testing.T) {
	svc := NewCartService(memory.NewRepository())
	seedCart(t, svc, "testCart123")

	cart, err := svc.AddItemToCart(context.Background(), "testCart123", testItem(1, "Test Product"))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "Test Product", cart.Items[0].Name)

	_, err = svc.AddItemToCart(context.Background(), "missing", testItem(1, "Test Product"))
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRemoveItemFromCart_IsIdempotent(t *testing.T) {
	svc := NewCartService(memory.NewRepository())
	seedCart(t, svc, "testCart123")
	_, err := svc.AddItemToCart(context.Background(), "testCart123", testItem(1, "Test Product"))
	require.NoError(t, err)

	cart, err := svc.RemoveItemFromCart(context.Background(), "testCart123", 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// Removing the same absent id again yields the same state, not an error.
	again, err := svc.RemoveItemFromCart(context.Background(), "testCart123", 1)
	require.NoError(t, err)
	require.Equal(t, cart, again)
}

func TestUpdateCartItem_ReplacesInPlacePreservingPosition(t *testing.T) {
	svc := NewCartService(memory.NewRepository())
	seedCart(t, svc, "testCart123")
	_, err := svc.AddItemToCart(context.Background(), "testCart123", testItem(1, "First"))
	require.NoError(t, err)
	_, err = svc.AddItemToCart(context.Background(), "testCart123", testItem(2, "Second"))
	require.NoError(t, err)

	updated := domain.Item{ID: 1, Name: "Renamed", Price: decimal.RequireFromString("7.99"), Quantity: 3}
	cart, err := svc.UpdateCartItem(context.Background(), "testCart123", updated)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	require.Equal(t, "Renamed", cart.Items[0].Name)
	require.Equal(t, "7.99", cart.Items[0].Price.String())
	require.Equal(t, "Second", cart.Items[1].Name)
}

func TestUpdateCartItem_UnknownIDIsNoOpNotInsert(t *testing.T) {
	svc := NewCartService(memory.NewRepository())
	seedCart(t, svc, "testCart123")
	_, err := svc.AddItemToCart(context.Background(), "testCart123", testItem(1, "Only"))
	require.NoError(t, err)

	cart, err := svc.UpdateCartItem(context.Background(), "testCart123", testItem(99, "Ghost"))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "Only", cart.Items[0].Name)
}

func TestRemoveCart_AbsentIDIsNotFound(t *testing.T) {
	svc := NewCartService(memory.NewRepository())
	seedCart(t, svc, "testCart123")

	require.NoError(t, svc.RemoveCart(context.Background(), "testCart123"))
	require.ErrorIs(t, svc.RemoveCart(context.Background(), "testCart123"), ports.ErrNotFound)
}

func TestCartsWithoutOrders(t *testing.T) {
	repo := memory.NewRepository()
	carts := NewCartService(repo)
	orders := NewOrderService(repo, carts)

	seedCart(t, carts, "cart1")
	seedCart(t, carts, "cart2")

	_, err := orders.SaveOrder(context.Background(), &domain.CardOrder{Cart: &domain.Cart{ID: "cart1"}})
	require.NoError(t, err)

	orphans, err := carts.CartsWithoutOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	require.Equal(t, "cart2", orphans[0].ID)
}

func TestCartsWithoutOrders_AllReferenced(t *testing.T) {
	repo := memory.NewRepository()
	carts := NewCartService(repo)
	orders := NewOrderService(repo, carts)

	seedCart(t, carts, "cart1")
	seedCart(t, carts, "cart2")
	for _, id := range []string{"cart1", "cart2"} {
		_, err := orders.SaveOrder(context.Background(), &domain.CardOrder{Cart: &domain.Cart{ID: id}})
		require.NoError(t, err)
	}

	orphans, err := carts.CartsWithoutOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orphans)
}

func TestCartsWithoutOrders_DeterministicOrder(t *testing.T) {
	repo := memory.NewRepository()
	carts := NewCartService(repo)

	seedCart(t, carts, "cartB")
	seedCart(t, carts, "cartA")
	seedCart(t, carts, "cartC")

	first, err := carts.CartsWithoutOrders(context.Background())
	require.NoError(t, err)
	second, err := carts.CartsWithoutOrders(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "cartA", first[0].ID)
	require.Equal(t, "cartC", first[2].ID)
}

package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneercards/storefront/internal/domains/checkout/adapters/memory"
	"github.com/pioneercards/storefront/internal/domains/checkout/adapters/web/mapper"
	"github.com/pioneercards/storefront/internal/domains/checkout/application"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := memory.NewRepository()
	carts := application.NewCartService(repo)
	orders := application.NewOrderService(repo, carts)
	router := gin.New()
	NewStoreAPI(carts, orders).Register(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) mapper.Cart {
	t.Helper()
	var cart mapper.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	return cart
}

func TestStoreAPI_SaveCartAssignsID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/cart", mapper.Cart{Items: []mapper.Item{
		{ID: 1, Name: "Ada Lovelace", Price: decimal.RequireFromString("24.99"), Quantity: 1},
	}})

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.NotEmpty(t, cart.ID)
	require.Len(t, cart.Items, 1)
}

func TestStoreAPI_GetCartNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/cart/ghost", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestStoreAPI_NoorderListsUnreferencedCarts(t *testing.T) {
	router := newTestRouter(t)

	first := decodeCart(t, doJSON(t, router, http.MethodPost, "/cart", mapper.Cart{ID: "cart1"}))
	second := decodeCart(t, doJSON(t, router, http.MethodPost, "/cart", mapper.Cart{ID: "cart2"}))
	rec := doJSON(t, router, http.MethodPost, "/order", mapper.Order{
		Cart:     &mapper.Cart{ID: first.ID},
		Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/cart/noorder", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var carts []mapper.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &carts))
	require.Len(t, carts, 1)
	assert.Equal(t, second.ID, carts[0].ID)
}

func TestStoreAPI_ItemLifecycle(t *testing.T) {
	router := newTestRouter(t)

	cart := decodeCart(t, doJSON(t, router, http.MethodPost, "/cart", mapper.Cart{ID: "cart1"}))

	rec := doJSON(t, router, http.MethodPost, "/cart/"+cart.ID+"/item", mapper.Item{
		ID: 7, Name: "Grace Hopper", Price: decimal.RequireFromString("22.50"), Quantity: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeCart(t, rec).Items, 1)

	rec = doJSON(t, router, http.MethodPut, "/cart/"+cart.ID+"/item", mapper.Item{
		ID: 7, Name: "Grace Hopper", Price: decimal.RequireFromString("22.50"), Quantity: 3,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeCart(t, rec)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 3, updated.Items[0].Quantity)

	rec = doJSON(t, router, http.MethodDelete, "/cart/"+cart.ID+"/item/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestStoreAPI_AddItemRejectsNegativePrice(t *testing.T) {
	router := newTestRouter(t)

	cart := decodeCart(t, doJSON(t, router, http.MethodPost, "/cart", mapper.Cart{ID: "cart1"}))

	rec := doJSON(t, router, http.MethodPost, "/cart/"+cart.ID+"/item", mapper.Item{
		ID: 1, Name: "Bad Price", Price: decimal.RequireFromString("-1"), Quantity: 1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreAPI_RemoveCart(t *testing.T) {
	router := newTestRouter(t)

	decodeCart(t, doJSON(t, router, http.MethodPost, "/cart", mapper.Cart{ID: "cart1"}))

	rec := doJSON(t, router, http.MethodDelete, "/cart/cart1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/cart/cart1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreAPI_SaveOrderUsesStoredCart(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/cart", mapper.Cart{ID: "cart1", Items: []mapper.Item{
		{ID: 1, Name: "Ada Lovelace", Price: decimal.RequireFromString("24.99"), Quantity: 1},
	}})
	require.Equal(t, http.StatusOK, rec.Code)

	// The submitted order embeds a stale cart; the stored one wins.
	rec = doJSON(t, router, http.MethodPost, "/order", mapper.Order{
		Cart:     &mapper.Cart{ID: "cart1", Items: []mapper.Item{{ID: 99, Name: "Stale", Price: decimal.Zero, Quantity: 1}}},
		Customer: &mapper.Customer{FirstName: "Annie", LastName: "Easley", Email: "annie@example.com"},
		Subtotal: decimal.RequireFromString("24.99"),
		Tax:      decimal.RequireFromString("1.50"),
		Total:    decimal.RequireFromString("26.49"),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var order mapper.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.NotZero(t, order.ID)
	require.NotNil(t, order.Cart)
	require.Len(t, order.Cart.Items, 1)
	assert.Equal(t, int64(1), order.Cart.Items[0].ID)

	rec = doJSON(t, router, http.MethodGet, "/order/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStoreAPI_SaveOrderUnknownCart(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/order", mapper.Order{
		Cart:     &mapper.Cart{ID: "ghost"},
		Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreAPI_SaveOrderWithoutCart(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/order", mapper.Order{
		Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreAPI_GetOrderMissing(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/order/12345", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/order/not-a-number", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

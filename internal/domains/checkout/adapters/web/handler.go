// Package web exposes the store API over gin.
package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pioneercards/storefront/internal/domains/checkout/adapters/web/mapper"
	"github.com/pioneercards/storefront/internal/domains/checkout/application"
	"github.com/pioneercards/storefront/internal/domains/checkout/ports"
	apierrors "github.com/pioneercards/storefront/internal/shared/errors"
)

// StoreAPI wires HTTP transport with the checkout cart and order services.
type StoreAPI struct {
	carts  ports.CartService
	orders ports.OrderService
}

// NewStoreAPI creates a StoreAPI backed by the provided services.
func NewStoreAPI(carts ports.CartService, orders ports.OrderService) StoreAPI {
	return StoreAPI{carts: carts, orders: orders}
}

// Register mounts the store routes on the given router.
func (api StoreAPI) Register(router gin.IRouter) {
	router.POST("/cart", api.SaveCart)
	// gin cannot register /cart/noorder next to /cart/:cartId, so the static
	// path is dispatched inside the parameterised handler.
	router.GET("/cart/:cartId", api.GetCart)
	router.DELETE("/cart/:cartId", api.RemoveCart)
	router.POST("/cart/:cartId/item", api.AddItem)
	router.PUT("/cart/:cartId/item", api.UpdateItem)
	router.DELETE("/cart/:cartId/item/:itemId", api.RemoveItem)
	router.POST("/order", api.SaveOrder)
	router.GET("/order/:orderId", api.GetOrder)
}

// Post /cart
// Creates or replaces a cart; an empty id gets one assigned.
func (api StoreAPI) SaveCart(c *gin.Context) {
	var payload mapper.Cart
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	saved, err := api.carts.SaveCart(c.Request.Context(), mapper.ToDomainCart(payload))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainCart(saved))
}

// Get /cart/:cartId
// Find cart by id. The literal id "noorder" lists carts no order references.
func (api StoreAPI) GetCart(c *gin.Context) {
	cartID := c.Param("cartId")
	if cartID == "noorder" {
		carts, err := api.carts.CartsWithoutOrders(c.Request.Context())
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, mapper.FromDomainCarts(carts))
		return
	}
	cart, err := api.carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainCart(cart))
}

// Delete /cart/:cartId
// Deletes a cart; absent ids report not found.
func (api StoreAPI) RemoveCart(c *gin.Context) {
	if err := api.carts.RemoveCart(c.Request.Context(), c.Param("cartId")); err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Post /cart/:cartId/item
// Appends an item to the cart.
func (api StoreAPI) AddItem(c *gin.Context) {
	var payload mapper.Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	cart, err := api.carts.AddItemToCart(c.Request.Context(), c.Param("cartId"), mapper.ToDomainItem(payload))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainCart(cart))
}

// Put /cart/:cartId/item
// Replaces a cart item in place; unknown item ids leave the cart unchanged.
func (api StoreAPI) UpdateItem(c *gin.Context) {
	var payload mapper.Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	cart, err := api.carts.UpdateCartItem(c.Request.Context(), c.Param("cartId"), mapper.ToDomainItem(payload))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainCart(cart))
}

// Delete /cart/:cartId/item/:itemId
// Removes an item from the cart; removing an absent item is a no-op.
func (api StoreAPI) RemoveItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	cart, err := api.carts.RemoveItemFromCart(c.Request.Context(), c.Param("cartId"), itemID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainCart(cart))
}

// Post /order
// Persists an order after re-fetching the authoritative cart it references.
func (api StoreAPI) SaveOrder(c *gin.Context) {
	var payload mapper.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	saved, err := api.orders.SaveOrder(c.Request.Context(), mapper.ToDomainOrder(payload))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(saved))
}

// Get /order/:orderId
// Find order by id.
func (api StoreAPI) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	if order == nil {
		apierrors.DefaultResponder.NotFound(c, "order", orderID)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ports.ErrMissingCart), errors.Is(err, application.ErrInvalidInput):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		apierrors.DefaultResponder.InternalError(c, err.Error())
	}
}

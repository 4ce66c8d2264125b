// Package web exposes the confirmation producer endpoint.
package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pioneercards/storefront/internal/domains/notifications/ports"
	apierrors "github.com/pioneercards/storefront/internal/shared/errors"
)

// ConfirmAPI publishes confirmation requests onto the notification channel.
type ConfirmAPI struct {
	queue ports.Queue
}

// NewConfirmAPI creates the handler set for the notifier service.
func NewConfirmAPI(queue ports.Queue) ConfirmAPI {
	return ConfirmAPI{queue: queue}
}

// Register mounts the routes on the given router.
func (api ConfirmAPI) Register(router gin.IRouter) {
	router.GET("/confirm/:orderId", api.Confirm)
}

// Get /confirm/:orderId
// Queues an order confirmation for asynchronous delivery.
func (api ConfirmAPI) Confirm(c *gin.Context) {
	raw := c.Param("orderId")
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		apierrors.DefaultResponder.BadRequest(c, "orderId must be an integer")
		return
	}
	if err := api.queue.Publish(c.Request.Context(), raw); err != nil {
		apierrors.DefaultResponder.InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"queued": raw})
}

// Package application implements the order confirmation consumer.
package application

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/pioneercards/storefront/internal/domains/notifications/ports"
)

// Confirmer drains the confirmation channel, resolving each order id to the
// stored order and emitting the confirmation. A message that cannot be
// resolved is logged and considered handled; there is no redelivery.
type Confirmer struct {
	queue  ports.Queue
	orders ports.OrderFinder
	logger *slog.Logger
}

// NewConfirmer wires the consumer against a queue and an order lookup.
func NewConfirmer(queue ports.Queue, orders ports.OrderFinder, logger *slog.Logger) *Confirmer {
	return &Confirmer{queue: queue, orders: orders, logger: logger}
}

// Run consumes until ctx is cancelled.
func (c *Confirmer) Run(ctx context.Context) error {
	for {
		message, err := c.queue.Receive(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			c.logger.Error("confirmation receive failed", slog.String("error", err.Error()))
			continue
		}
		c.confirm(ctx, message)
	}
}

func (c *Confirmer) confirm(ctx context.Context, message string) {
	orderID, err := strconv.ParseInt(message, 10, 64)
	if err != nil {
		c.logger.Error("discarding malformed confirmation message", slog.String("message", message))
		return
	}
	order, err := c.orders.GetOrder(ctx, orderID)
	if err != nil {
		c.logger.Error("order lookup failed, confirmation dropped",
			slog.Int64("orderId", orderID), slog.String("error", err.Error()))
		return
	}
	if order == nil {
		c.logger.Warn("confirmation for unknown order", slog.Int64("orderId", orderID))
		return
	}
	attrs := []any{
		slog.Int64("orderId", order.ID),
		slog.String("total", order.Total.String()),
	}
	if order.Customer != nil {
		attrs = append(attrs, slog.String("email", order.Customer.Email))
	}
	c.logger.Info("order confirmation sent", attrs...)
}

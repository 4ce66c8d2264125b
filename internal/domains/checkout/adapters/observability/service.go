// Package observability decorates the checkout services with tracing,
// logging, and metrics.
package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	"github.com/pioneercards/storefront/internal/domains/checkout/ports"
)

const tracerName = "github.com/pioneercards/storefront/internal/domains/checkout/adapters/observability"

// CartService decorates a cart service port.
type CartService struct {
	inner   ports.CartService
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics cartMetrics
}

// Option configures a decorator.
type Option func(*settings)

type settings struct {
	tracer trace.Tracer
	logger *slog.Logger
	meter  metric.Meter
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *settings) { s.tracer = tr }
}

// WithMeter injects the meter used to create metric instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *settings) { s.meter = m }
}

func applyOptions(opts []Option) settings {
	s := settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// NewCartService wires a decorator around the core cart service.
func NewCartService(inner ports.CartService, opts ...Option) ports.CartService {
	s := applyOptions(opts)
	return &CartService{inner: inner, tracer: s.tracer, logger: s.logger, metrics: newCartMetrics(s.meter)}
}

func (s *CartService) SaveCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "CartService.SaveCart")
	defer span.End()
	saved, err := s.inner.SaveCart(ctx, cart)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save cart")
	}
	s.metrics.recordSaved(ctx)
	s.logInfo(ctx, "cart saved", slog.String("cartId", saved.ID), slog.Int("items", len(saved.Items)))
	return saved, nil
}

func (s *CartService) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "CartService.GetCart", attribute.String("cart.id", id))
	defer span.End()
	cart, err := s.inner.GetCart(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get cart", slog.String("cartId", id))
	}
	return cart, nil
}

func (s *CartService) RemoveCart(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "CartService.RemoveCart", attribute.String("cart.id", id))
	defer span.End()
	if err := s.inner.RemoveCart(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to remove cart", slog.String("cartId", id))
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "cart removed", slog.String("cartId", id))
	return nil
}

func (s *CartService) AddItemToCart(ctx context.Context, cartID string, item domain.Item) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "CartService.AddItemToCart",
		attribute.String("cart.id", cartID), attribute.Int64("item.id", item.ID))
	defer span.End()
	cart, err := s.inner.AddItemToCart(ctx, cartID, item)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add item", slog.String("cartId", cartID))
	}
	s.logInfo(ctx, "item added", slog.String("cartId", cartID), slog.Int64("itemId", item.ID))
	return cart, nil
}

func (s *CartService) RemoveItemFromCart(ctx context.Context, cartID string, itemID int64) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "CartService.RemoveItemFromCart",
		attribute.String("cart.id", cartID), attribute.Int64("item.id", itemID))
	defer span.End()
	cart, err := s.inner.RemoveItemFromCart(ctx, cartID, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove item", slog.String("cartId", cartID))
	}
	return cart, nil
}

func (s *CartService) UpdateCartItem(ctx context.Context, cartID string, item domain.Item) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "CartService.UpdateCartItem",
		attribute.String("cart.id", cartID), attribute.Int64("item.id", item.ID))
	defer span.End()
	cart, err := s.inner.UpdateCartItem(ctx, cartID, item)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item", slog.String("cartId", cartID))
	}
	return cart, nil
}

func (s *CartService) CartsWithoutOrders(ctx context.Context) ([]*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "CartService.CartsWithoutOrders")
	defer span.End()
	carts, err := s.inner.CartsWithoutOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list carts without orders")
	}
	span.SetAttributes(attribute.Int("cart.result.count", len(carts)))
	s.logInfo(ctx, "listed carts without orders", slog.Int("count", len(carts)))
	return carts, nil
}

func (s *CartService) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *CartService) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *CartService) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

// OrderService decorates an order service port.
type OrderService struct {
	inner   ports.OrderService
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics orderMetrics
}

// NewOrderService wires a decorator around the core order service.
func NewOrderService(inner ports.OrderService, opts ...Option) ports.OrderService {
	s := applyOptions(opts)
	return &OrderService{inner: inner, tracer: s.tracer, logger: s.logger, metrics: newOrderMetrics(s.meter)}
}

func (s *OrderService) SaveOrder(ctx context.Context, order *domain.CardOrder) (*domain.CardOrder, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.SaveOrder")
	defer span.End()
	saved, err := s.inner.SaveOrder(ctx, order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to save order", slog.String("error", err.Error()))
		return nil, err
	}
	s.metrics.recordSaved(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order saved",
		slog.Int64("orderId", saved.ID), slog.String("total", saved.Total.String()))
	return saved, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.CardOrder, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()
	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to get order",
			slog.Int64("orderId", id), slog.String("error", err.Error()))
		return nil, err
	}
	return order, nil
}

type cartMetrics struct {
	cartsSaved   metric.Int64Counter
	cartsRemoved metric.Int64Counter
}

func newCartMetrics(m metric.Meter) cartMetrics {
	if m == nil {
		return cartMetrics{}
	}
	saved, _ := m.Int64Counter("checkout.carts.saved", metric.WithDescription("Number of carts saved"))
	removed, _ := m.Int64Counter("checkout.carts.removed", metric.WithDescription("Number of carts removed"))
	return cartMetrics{cartsSaved: saved, cartsRemoved: removed}
}

func (m cartMetrics) recordSaved(ctx context.Context)   { addCounter(ctx, m.cartsSaved, 1) }
func (m cartMetrics) recordRemoved(ctx context.Context) { addCounter(ctx, m.cartsRemoved, 1) }

type orderMetrics struct {
	ordersSaved metric.Int64Counter
}

func newOrderMetrics(m metric.Meter) orderMetrics {
	if m == nil {
		return orderMetrics{}
	}
	saved, _ := m.Int64Counter("checkout.orders.saved", metric.WithDescription("Number of orders saved"))
	return orderMetrics{ordersSaved: saved}
}

func (m orderMetrics) recordSaved(ctx context.Context) { addCounter(ctx, m.ordersSaved, 1) }

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var (
	_ ports.CartService  = (*CartService)(nil)
	_ ports.OrderService = (*OrderService)(nil)
)

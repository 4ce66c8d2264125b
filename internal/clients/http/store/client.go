// Package store is the HTTP client for the cart/order store API. It backs the
// cleanup sweep and the notification consumer across the service boundary.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pioneercards/storefront/internal/domains/checkout/adapters/web/mapper"
	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	"github.com/pioneercards/storefront/internal/domains/checkout/ports"
)

// Client calls the store API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient instantiates the store client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("store base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

// CartsWithoutOrders lists the carts no order references.
func (c *Client) CartsWithoutOrders(ctx context.Context) ([]*domain.Cart, error) {
	resp, err := c.do(ctx, http.MethodGet, "/cart/noorder")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store API unexpected status: %s", resp.Status)
	}
	var payload []mapper.Cart
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode cart list: %w", err)
	}
	carts := make([]*domain.Cart, 0, len(payload))
	for _, cart := range payload {
		carts = append(carts, mapper.ToDomainCart(cart))
	}
	return carts, nil
}

// RemoveCart deletes the cart. A 404 maps to ports.ErrNotFound so callers can
// tell "already gone" from "failed".
func (c *Client) RemoveCart(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("cart %s: %w", id, ports.ErrNotFound)
	default:
		return fmt.Errorf("store API unexpected status: %s", resp.Status)
	}
}

// GetOrder fetches an order by id, returning (nil, nil) when it does not exist.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*domain.CardOrder, error) {
	resp, err := c.do(ctx, http.MethodGet, "/order/"+strconv.FormatInt(orderID, 10))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		var payload mapper.Order
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		return mapper.ToDomainOrder(payload), nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("store API unexpected status: %s", resp.Status)
	}
}

func (c *Client) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build store request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call store API: %w", err)
	}
	return resp, nil
}

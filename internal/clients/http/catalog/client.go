// Package catalog is the HTTP client for the trading-card catalog API.
package catalog

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

	"github.com/pioneercards/storefront/internal/domains/catalog/domain"
)

// Client calls the catalog API read endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// FilterParams carries the optional filter query, raw strings so callers can
// pass user input through untouched.
type FilterParams struct {
	MinPrice  string
	MaxPrice  string
	Specialty string
	Sort      string
}

// NewClient instantiates the catalog client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

// Paginated fetches one catalog page.
func (c *Client) Paginated(ctx context.Context, page, size int) ([]domain.TradingCard, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return c.getCards(ctx, "/api/cards", query)
}

// FilterAndSort fetches cards matching the given filter.
func (c *Client) FilterAndSort(ctx context.Context, params FilterParams) ([]domain.TradingCard, error) {
	query := url.Values{}
	setIfPresent(query, "minPrice", params.MinPrice)
	setIfPresent(query, "maxPrice", params.MaxPrice)
	setIfPresent(query, "specialty", params.Specialty)
	setIfPresent(query, "sort", params.Sort)
	return c.getCards(ctx, "/api/cards/filter", query)
}

// Search fetches cards matching the query string.
func (c *Client) Search(ctx context.Context, search string) ([]domain.TradingCard, error) {
	query := url.Values{}
	query.Set("query", search)
	return c.getCards(ctx, "/api/cards/search", query)
}

func (c *Client) getCards(ctx context.Context, path string, query url.Values) ([]domain.TradingCard, error) {
	endpoint := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call catalog API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog API unexpected status: %s", resp.Status)
	}
	var cards []domain.TradingCard
	if err := json.NewDecoder(resp.Body).Decode(&cards); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return cards, nil
}

func setIfPresent(query url.Values, key, value string) {
	if strings.TrimSpace(value) != "" {
		query.Set(key, value)
	}
}

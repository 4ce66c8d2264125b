// Package gateway fronts the storefront web app, proxying catalog reads to
// the catalog API.
package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogclient "github.com/pioneercards/storefront/internal/clients/http/catalog"
	"github.com/pioneercards/storefront/internal/domains/catalog/domain"
	apierrors "github.com/pioneercards/storefront/internal/shared/errors"
)

// Pagination defaults applied when the browser omits the parameters.
const (
	DefaultPage = 0
	DefaultSize = 8
)

// CardSource is the slice of the catalog client the gateway consumes.
type CardSource interface {
	Paginated(ctx context.Context, page, size int) ([]domain.TradingCard, error)
	FilterAndSort(ctx context.Context, params catalogclient.FilterParams) ([]domain.TradingCard, error)
	Search(ctx context.Context, query string) ([]domain.TradingCard, error)
}

// API proxies card requests to the catalog service.
type API struct {
	cards CardSource
}

// NewAPI creates the gateway handler set.
func NewAPI(cards CardSource) API {
	return API{cards: cards}
}

// Register mounts the proxy routes on the given router.
func (api API) Register(router gin.IRouter) {
	router.GET("/api/cards", api.ListCards)
	router.GET("/api/cards/filter", api.FilterCards)
	router.GET("/api/cards/search", api.SearchCards)
}

// Get /api/cards
func (api API) ListCards(c *gin.Context) {
	page := intQueryOrDefault(c, "page", DefaultPage)
	size := intQueryOrDefault(c, "size", DefaultSize)
	cards, err := api.cards.Paginated(c.Request.Context(), page, size)
	if err != nil {
		apierrors.DefaultResponder.BadGateway(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Get /api/cards/filter
func (api API) FilterCards(c *gin.Context) {
	params := catalogclient.FilterParams{
		MinPrice:  c.Query("minPrice"),
		MaxPrice:  c.Query("maxPrice"),
		Specialty: c.Query("specialty"),
		Sort:      c.Query("sort"),
	}
	cards, err := api.cards.FilterAndSort(c.Request.Context(), params)
	if err != nil {
		apierrors.DefaultResponder.BadGateway(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Get /api/cards/search
func (api API) SearchCards(c *gin.Context) {
	cards, err := api.cards.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		apierrors.DefaultResponder.BadGateway(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, cards)
}

func intQueryOrDefault(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// Package web exposes the catalog API over gin.
package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pioneercards/storefront/internal/domains/catalog/application"
	"github.com/pioneercards/storefront/internal/domains/catalog/domain"
	apierrors "github.com/pioneercards/storefront/internal/shared/errors"
)

// Pagination defaults when the caller omits the query parameters.
const (
	DefaultPage = 0
	DefaultSize = 8
)

// CatalogAPI wires HTTP transport with the catalog read service.
type CatalogAPI struct {
	service *application.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service *application.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Register mounts the catalog routes on the given router.
func (api CatalogAPI) Register(router gin.IRouter) {
	router.GET("/api/cards", api.ListCards)
	router.GET("/api/cards/filter", api.FilterCards)
	router.GET("/api/cards/search", api.SearchCards)
}

// Get /api/cards
// Returns one page of the catalog.
func (api CatalogAPI) ListCards(c *gin.Context) {
	page, ok := parseIntQuery(c, "page", DefaultPage)
	if !ok {
		return
	}
	size, ok := parseIntQuery(c, "size", DefaultSize)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, api.service.Paginated(page, size))
}

// Get /api/cards/filter
// Filters by optional price bounds and specialty, sorted by name or price.
func (api CatalogAPI) FilterCards(c *gin.Context) {
	query := application.FilterQuery{Sort: domain.NormalizeSort(c.Query("sort"))}
	if raw := c.Query("minPrice"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			apierrors.DefaultResponder.BadRequest(c, "minPrice must be a decimal number")
			return
		}
		query.MinPrice = &min
	}
	if raw := c.Query("maxPrice"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			apierrors.DefaultResponder.BadRequest(c, "maxPrice must be a decimal number")
			return
		}
		query.MaxPrice = &max
	}
	if raw := c.Query("specialty"); raw != "" {
		query.Specialty = &raw
	}
	c.JSON(http.StatusOK, api.service.FilterAndSort(query))
}

// Get /api/cards/search
// Case-insensitive substring search over name and contribution.
func (api CatalogAPI) SearchCards(c *gin.Context) {
	c.JSON(http.StatusOK, api.service.Search(c.Query("query")))
}

func parseIntQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		apierrors.DefaultResponder.BadRequest(c, name+" must be an integer")
		return 0, false
	}
	return value, true
}

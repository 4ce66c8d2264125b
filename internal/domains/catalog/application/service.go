package application

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pioneercards/storefront/internal/domains/catalog/domain"
)

// Service serves read-only projections over the catalog loaded at startup.
// The backing slice is never mutated after construction, so all methods are
// safe for concurrent use.
type Service struct {
	cards []domain.TradingCard
}

// NewService takes ownership of the loaded card list.
func NewService(cards []domain.TradingCard) *Service {
	return &Service{cards: cards}
}

// FilterQuery carries the optional filter/sort parameters.
type FilterQuery struct {
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Specialty *string
	Sort      domain.SortField
}

// Paginated returns the page at page*size. An offset past the end yields an
// empty slice, not an error.
func (s *Service) Paginated(page, size int) []domain.TradingCard {
	if page < 0 || size <= 0 {
		return []domain.TradingCard{}
	}
	from := page * size
	if from >= len(s.cards) {
		return []domain.TradingCard{}
	}
	to := from + size
	if to > len(s.cards) {
		to = len(s.cards)
	}
	return append([]domain.TradingCard{}, s.cards[from:to]...)
}

// FilterAndSort applies the optional price bounds and specialty match, then
// orders by the requested field. Ties keep insertion order.
func (s *Service) FilterAndSort(query FilterQuery) []domain.TradingCard {
	result := make([]domain.TradingCard, 0, len(s.cards))
	for _, card := range s.cards {
		if query.MinPrice != nil && card.Price.Cmp(*query.MinPrice) < 0 {
			continue
		}
		if query.MaxPrice != nil && card.Price.Cmp(*query.MaxPrice) > 0 {
			continue
		}
		if query.Specialty != nil && !strings.EqualFold(card.Specialty, *query.Specialty) {
			continue
		}
		result = append(result, card)
	}
	switch query.Sort {
	case domain.SortByPrice:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.Cmp(result[j].Price) < 0
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Name < result[j].Name
		})
	}
	return result
}

// Search matches the query case-insensitively against name or contribution.
func (s *Service) Search(query string) []domain.TradingCard {
	needle := strings.ToLower(query)
	result := make([]domain.TradingCard, 0)
	for _, card := range s.cards {
		if strings.Contains(strings.ToLower(card.Name), needle) ||
			strings.Contains(strings.ToLower(card.Contribution), needle) {
			result = append(result, card)
		}
	}
	return result
}

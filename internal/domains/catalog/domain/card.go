package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TradingCard is a single computing-pioneer card in the catalog. Cards are
// loaded once at process start and never mutated afterwards.
type TradingCard struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Specialty    string          `json:"specialty"`
	Contribution string          `json:"contribution"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl"`
}

// SortField enumerates the supported catalog orderings.
type SortField string

const (
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
)

// NormalizeSort maps arbitrary caller input onto a supported ordering,
// defaulting to name.
func NormalizeSort(raw string) SortField {
	if strings.EqualFold(raw, string(SortByPrice)) {
		return SortByPrice
	}
	return SortByName
}

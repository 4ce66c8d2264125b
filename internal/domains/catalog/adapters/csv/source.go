package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pioneercards/storefront/internal/domains/catalog/domain"
	"github.com/pioneercards/storefront/internal/domains/catalog/ports"
)

var _ ports.Source = (*Source)(nil)

// Source reads trading cards from a CSV file with a
// Name,Specialty,Contribution,Price,ImageUrl header row.
type Source struct {
	path   string
	logger *slog.Logger
}

// NewSource builds a file-backed catalog source. A nil logger falls back to the
// process default.
func NewSource(path string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{path: path, logger: logger}
}

var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// Load reads every row, assigning ids in file order starting at 1. Rows that
// cannot be mapped to a card are skipped with a logged error; a price field
// that fails to parse defaults to zero and the row is kept.
func (s *Source) Load(ctx context.Context) ([]domain.TradingCard, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	columns := indexColumns(header)

	cards := make([]domain.TradingCard, 0, 64)
	nextID := int64(1)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Error("skipping malformed catalog row", slog.String("error", err.Error()))
			continue
		}
		name := field(columns, row, "Name")
		if name == "" {
			s.logger.Error("skipping catalog row without a name", slog.Int64("card", nextID))
			continue
		}
		rawPrice := field(columns, row, "Price")
		price, err := ParsePrice(rawPrice)
		if err != nil {
			s.logger.Error("price did not parse, defaulting to zero",
				slog.String("name", name), slog.String("price", rawPrice))
		}
		cards = append(cards, domain.TradingCard{
			ID:           nextID,
			Name:         name,
			Specialty:    field(columns, row, "Specialty"),
			Contribution: field(columns, row, "Contribution"),
			Price:        price,
			ImageURL:     field(columns, row, "ImageUrl"),
		})
		nextID++
	}
	s.logger.Info("catalog loaded", slog.Int("cards", len(cards)), slog.String("path", s.path))
	return cards, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}

func field(columns map[string]int, row []string, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParsePrice strips currency symbols and digit grouping before parsing.
// Anything that still fails to parse yields zero alongside the error so the
// caller can keep the row.
func ParsePrice(raw string) (decimal.Decimal, error) {
	cleaned := nonPriceChars.ReplaceAllString(raw, "")
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return price, nil
}

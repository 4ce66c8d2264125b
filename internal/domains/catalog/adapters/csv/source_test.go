package csv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	source := NewSource(filepath.Join("testdata", "pioneers.csv"), nil)
	cards, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3) // nameless row skipped

	require.Equal(t, int64(1), cards[0].ID)
	require.Equal(t, "Ada Lovelace", cards[0].Name)
	require.Equal(t, "Mathematics", cards[0].Specialty)
	require.Equal(t, "12.5", cards[0].Price.String())

	// Unparseable price keeps the row with a zero price.
	require.Equal(t, "Alan Turing", cards[1].Name)
	require.True(t, cards[1].Price.IsZero())
	require.Equal(t, "Formalized computation with the Turing machine", cards[1].Contribution)

	require.Equal(t, "Grace Hopper", cards[2].Name)
	require.Equal(t, "1024.99", cards[2].Price.String())
}

func TestLoad_MissingFile(t *testing.T) {
	source := NewSource(filepath.Join("testdata", "absent.csv"), nil)
	_, err := source.Load(context.Background())
	require.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	price, err := ParsePrice("$12.50")
	require.NoError(t, err)
	require.Equal(t, "12.5", price.String())

	price, err = ParsePrice("garbage")
	require.Error(t, err)
	require.True(t, price.IsZero())

	price, err = ParsePrice("$1,024.99")
	require.NoError(t, err)
	require.Equal(t, "1024.99", price.String())
}

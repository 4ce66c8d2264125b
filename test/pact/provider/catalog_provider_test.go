//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogweb "github.com/pioneercards/storefront/internal/domains/catalog/adapters/web"
	catalogapp "github.com/pioneercards/storefront/internal/domains/catalog/application"
	"github.com/pioneercards/storefront/internal/domains/catalog/domain"
	pacttest "github.com/pioneercards/storefront/test/pact"
)

func TestCatalogProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := newCatalogServer(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		// The catalog is immutable after load, so the seeded state needs no setup.
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

func newCatalogServer(t testing.TB) *httptest.Server {
	t.Helper()

	cards := []domain.TradingCard{
		{
			ID:           1,
			Name:         "Ada Lovelace",
			Specialty:    "Mathematics",
			Contribution: "Wrote the first published algorithm intended for a machine",
			Price:        decimal.RequireFromString("24.99"),
			ImageURL:     "/images/ada-lovelace.png",
		},
		{
			ID:           2,
			Name:         "Katherine Johnson",
			Specialty:    "Mathematics",
			Contribution: "Calculated orbital trajectories for the first American crewed spaceflights",
			Price:        decimal.RequireFromString("19.99"),
			ImageURL:     "/images/katherine-johnson.png",
		},
	}

	router := gin.New()
	router.Use(gin.Recovery())
	catalogweb.NewCatalogAPI(catalogapp.NewService(cards)).Register(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	catalogclient "github.com/pioneercards/storefront/internal/clients/http/catalog"
	pacttest "github.com/pioneercards/storefront/test/pact"
)

func TestGatewayCatalogContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	cardMatcher := matchers.Map{
		"id":           matchers.Like(1),
		"name":         matchers.Like("Ada Lovelace"),
		"specialty":    matchers.Like("Mathematics"),
		"contribution": matchers.Like("Wrote the first published algorithm intended for a machine"),
		"price":        matchers.Like("24.99"),
		"imageUrl":     matchers.Like("/images/ada-lovelace.png"),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request for the first catalog page").
		WithRequest("GET", "/api/cards", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("page", matchers.S("0"))
			b.Query("size", matchers.S("8"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.ArrayMinLike(cardMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a filtered catalog request sorted by price").
		WithRequest("GET", "/api/cards/filter", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("specialty", matchers.S("Mathematics"))
			b.Query("sort", matchers.S("price"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.ArrayMinLike(cardMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a catalog search request").
		WithRequest("GET", "/api/cards/search", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("query", matchers.S("ada"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.ArrayMinLike(cardMatcher, 1))
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := catalogclient.NewClient(fmt.Sprintf("http://%s:%d", host, config.Port), nil)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		page, err := client.Paginated(ctx, 0, 8)
		if err != nil {
			return fmt.Errorf("paginated: %w", err)
		}
		if len(page) == 0 {
			return fmt.Errorf("expected at least one card on the first page")
		}

		filtered, err := client.FilterAndSort(ctx, catalogclient.FilterParams{Specialty: "Mathematics", Sort: "price"})
		if err != nil {
			return fmt.Errorf("filter: %w", err)
		}
		if len(filtered) == 0 {
			return fmt.Errorf("expected filtered cards")
		}

		found, err := client.Search(ctx, "ada")
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("expected search results")
		}
		return nil
	})
	require.NoError(t, err)
}

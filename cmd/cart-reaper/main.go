// cart-reaper runs a single abandoned-cart sweep against the store API and
// exits. Use it for on-demand cleanup outside the daily schedule.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pioneercards/storefront/internal/cleanup"
	storeclient "github.com/pioneercards/storefront/internal/clients/http/store"
)

func main() {
	_ = godotenv.Load()
	ctx, cancel := context.WithTimeout(context.Background(), cleanup.DefaultDrainTimeout+time.Minute)
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	baseURL := strings.TrimSpace(os.Getenv("STORE_API_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:8083"
	}
	store, err := storeclient.NewClient(baseURL, nil)
	if err != nil {
		log.Fatalf("cart-reaper: %v", err)
	}

	result, err := cleanup.NewSweeper(store, logger).Sweep(ctx)
	if err != nil {
		log.Fatalf("cart-reaper: sweep failed: %v", err)
	}
	logger.Info("sweep completed",
		slog.Int("found", result.Found),
		slog.Int("deleted", result.Deleted),
		slog.Int("failed", result.Failed),
		slog.Bool("abandoned", result.Abandoned))
}

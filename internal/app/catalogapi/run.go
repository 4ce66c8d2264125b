// Package catalogapi boots the trading-card catalog HTTP service.
package catalogapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	catalogcsv "github.com/pioneercards/storefront/internal/domains/catalog/adapters/csv"
	catalogweb "github.com/pioneercards/storefront/internal/domains/catalog/adapters/web"
	catalogapp "github.com/pioneercards/storefront/internal/domains/catalog/application"
	platformobservability "github.com/pioneercards/storefront/internal/platform/observability"
)

// Run boots the catalog API. The CSV is loaded once; a missing or unreadable
// file is fatal because the service has nothing to serve without it.
func Run(ctx context.Context) error {
	_ = godotenv.Load()
	cfg := LoadConfig()

	const serviceName = "catalog-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cards, err := catalogcsv.NewSource(cfg.CSVPath, logger).Load(ctx)
	if err != nil {
		return fmt.Errorf("load card catalog: %w", err)
	}
	logger.Info("card catalog loaded", slog.String("path", cfg.CSVPath), slog.Int("cards", len(cards)))

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	catalogweb.NewCatalogAPI(catalogapp.NewService(cards)).Register(router)

	addr := ":" + cfg.Port
	logger.Info("catalog API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("catalog API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

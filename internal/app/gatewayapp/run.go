// Package gatewayapp boots the web-facing gateway.
package gatewayapp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	catalogclient "github.com/pioneercards/storefront/internal/clients/http/catalog"
	"github.com/pioneercards/storefront/internal/gateway"
	platformobservability "github.com/pioneercards/storefront/internal/platform/observability"
)

// Run boots the gateway with the catalog proxy wired.
func Run(ctx context.Context) error {
	_ = godotenv.Load()
	cfg := LoadConfig()

	const serviceName = "gateway"
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

	cards, err := catalogclient.NewClient(cfg.CatalogBaseURL, nil)
	if err != nil {
		return fmt.Errorf("build catalog client: %w", err)
	}

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	router.Use(cors.New(corsConfig(cfg)))
	gateway.NewAPI(cards).Register(router)

	addr := ":" + cfg.Port
	logger.Info("gateway listening", slog.String("addr", addr), slog.String("catalog", cfg.CatalogBaseURL))
	if err := router.Run(addr); err != nil {
		logger.Error("gateway server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func corsConfig(cfg Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}

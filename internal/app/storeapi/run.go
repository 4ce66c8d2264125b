// Package storeapi boots the cart/order store HTTP service.
package storeapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	checkoutmemory "github.com/pioneercards/storefront/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/pioneercards/storefront/internal/domains/checkout/adapters/observability"
	checkoutpostgres "github.com/pioneercards/storefront/internal/domains/checkout/adapters/persistence/postgres"
	checkoutweb "github.com/pioneercards/storefront/internal/domains/checkout/adapters/web"
	checkoutapp "github.com/pioneercards/storefront/internal/domains/checkout/application"
	checkoutports "github.com/pioneercards/storefront/internal/domains/checkout/ports"
	platformobservability "github.com/pioneercards/storefront/internal/platform/observability"
	platformpostgres "github.com/pioneercards/storefront/internal/platform/postgres"
)

// Run boots the store API with observability and repositories wired.
func Run(ctx context.Context) error {
	_ = godotenv.Load()
	cfg := LoadConfig()

	const serviceName = "store-api"
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

	repo, cleanupRepo := buildCheckoutRepository(ctx, logger)
	defer cleanupRepo()

	cartService := checkoutobs.NewCartService(
		checkoutapp.NewCartService(repo),
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)
	orderService := checkoutobs.NewOrderService(
		checkoutapp.NewOrderService(repo, cartService),
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	checkoutweb.NewStoreAPI(cartService, orderService).Register(router)

	addr := ":" + cfg.Port
	logger.Info("store API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("store API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildCheckoutRepository(ctx context.Context, logger *slog.Logger) (checkoutports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return checkoutmemory.NewRepository(), cleanup
	}
	logger.Info("checkout repository configured with postgres")
	return checkoutpostgres.NewRepository(db), cleanup
}

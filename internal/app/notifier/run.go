// Package notifier boots the order-confirmation service: the confirm
// endpoint, the queue consumer, and the scheduled cart sweep.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/pioneercards/storefront/internal/cleanup"
	"github.com/pioneercards/storefront/internal/cleanup/schedule"
	storeclient "github.com/pioneercards/storefront/internal/clients/http/store"
	notifymemory "github.com/pioneercards/storefront/internal/domains/notifications/adapters/memory"
	notifyredis "github.com/pioneercards/storefront/internal/domains/notifications/adapters/redisqueue"
	notifyweb "github.com/pioneercards/storefront/internal/domains/notifications/adapters/web"
	notifyapp "github.com/pioneercards/storefront/internal/domains/notifications/application"
	notifyports "github.com/pioneercards/storefront/internal/domains/notifications/ports"
	platformobservability "github.com/pioneercards/storefront/internal/platform/observability"
	platformredis "github.com/pioneercards/storefront/internal/platform/redis"
)

// sweepScheduler is satisfied by both the cron and Temporal schedulers.
type sweepScheduler interface {
	Start(ctx context.Context) error
	Stop()
}

// Run boots the notifier with observability, the queue, and the sweep wired.
func Run(ctx context.Context) error {
	_ = godotenv.Load()
	cfg := LoadConfig()

	const serviceName = "notifier"
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

	store, err := storeclient.NewClient(cfg.StoreBaseURL, nil)
	if err != nil {
		return fmt.Errorf("build store client: %w", err)
	}

	var queue notifyports.Queue
	if redisClient, cleanupRedis := platformredis.ConnectFromEnv(ctx, logger); redisClient != nil {
		defer cleanupRedis()
		queue = notifyredis.NewQueue(redisClient)
	} else {
		queue = notifymemory.NewQueue(0)
	}

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	confirmer := notifyapp.NewConfirmer(queue, store, logger)
	go func() {
		if err := confirmer.Run(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("confirmation consumer exited", slog.String("error", err.Error()))
		}
	}()

	sweeper := cleanup.NewSweeper(store, logger)
	scheduler := buildSweepScheduler(cfg, sweeper, instruments)
	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start sweep schedule: %w", err)
	}
	defer scheduler.Stop()

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	notifyweb.NewConfirmAPI(queue).Register(router)

	addr := ":" + cfg.Port
	logger.Info("notifier listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("notifier server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildSweepScheduler(cfg Config, sweeper *cleanup.Sweeper, instruments *platformobservability.Instruments) sweepScheduler {
	logger := instruments.Logger
	temporalClient, err := connectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal unavailable, scheduling cart sweep in-process", slog.String("error", err.Error()))
		return schedule.NewCronSweeps(sweeper, logger, cfg.SweepCron)
	}
	logger.Info("Temporal cart sweep schedule enabled")
	return schedule.NewTemporalSweeps(temporalClient, logger, cfg.SweepCron)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	address := os.Getenv("TEMPORAL_ADDRESS")
	if address == "" {
		address = client.DefaultHostPort
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  address,
		Namespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

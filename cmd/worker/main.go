package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/pioneercards/storefront/internal/cleanup"
	storeclient "github.com/pioneercards/storefront/internal/clients/http/store"
	cleanupworkflows "github.com/pioneercards/storefront/internal/durable/temporal/workflows/cleanup"
	platformobservability "github.com/pioneercards/storefront/internal/platform/observability"
	cleanupactivities "github.com/pioneercards/storefront/internal/platform/temporal/activities/cleanup"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	baseURL := strings.TrimSpace(os.Getenv("STORE_API_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:8083"
	}
	store, err := storeclient.NewClient(baseURL, nil)
	if err != nil {
		logger.Error("failed to build store client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sweeper := cleanup.NewSweeper(store, logger)
	activities := cleanupactivities.NewActivities(sweeper)

	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-worker"),
	})
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, cleanupworkflows.CartSweepTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(cleanupworkflows.CartSweepWorkflow, workflow.RegisterOptions{Name: cleanupworkflows.CartSweepWorkflowName})
	w.RegisterActivityWithOptions(activities.RunSweep, activity.RegisterOptions{Name: cleanupworkflows.RunSweepActivityName})

	logger.Info("worker listening", slog.String("taskQueue", cleanupworkflows.CartSweepTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

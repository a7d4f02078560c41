package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	basketshttp "github.com/eshopweb/order-pipeline/internal/domains/baskets/adapters/http"
	basketsmemory "github.com/eshopweb/order-pipeline/internal/domains/baskets/adapters/memory"
	ordershttp "github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/http"
	ordersmemory "github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/memory"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/notify"
	ordersobs "github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/persistence/postgres"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/queue"
	ordersworkflows "github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/eshopweb/order-pipeline/internal/domains/orders/application"
	ordersports "github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
	platformobservability "github.com/eshopweb/order-pipeline/internal/platform/observability"
	platformpostgres "github.com/eshopweb/order-pipeline/internal/platform/postgres"
)

// Run boots the order pipeline HTTP API with observability, repositories,
// fan-out destinations, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "order-pipeline-api"
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

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	orderRepo, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()
	basketRepo := basketsmemory.NewRepository()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	orderDetails := notify.NewSender(cfg.OrderDetails, httpClient)
	deliveryDetails := notify.NewSender(cfg.DeliveryDetails, httpClient)
	reservations := queue.NewPublisher(cfg.Reservations)
	defer reservations.Close()

	fanout := ordersapp.NewFanOut(orderDetails, deliveryDetails, reservations,
		ordersapp.WithFanOutLogger(logger))
	var orchestrator ordersports.FanOutOrchestrator = ordersworkflows.NewInlineFanOut(fanout)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running fan-out inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = ordersworkflows.NewTemporalFanOut(temporalClient)
		logger.Info("Temporal fan-out enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	coreService := ordersapp.NewService(orderRepo, basketRepo, orchestrator)
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	v1 := router.Group("/v1")
	ordershttp.NewHandler(orderService).Register(v1)
	basketshttp.NewHandler(basketRepo).Register(v1)

	addr := ":" + cfg.Port
	logger.Info("order pipeline API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order pipeline API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

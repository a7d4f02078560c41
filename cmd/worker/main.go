package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/notify"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/queue"
	platformkafka "github.com/eshopweb/order-pipeline/internal/platform/kafka"
	platformobservability "github.com/eshopweb/order-pipeline/internal/platform/observability"
	orderactivities "github.com/eshopweb/order-pipeline/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/eshopweb/order-pipeline/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-pipeline-worker"
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

	httpClient := &http.Client{Timeout: 30 * time.Second}
	orderDetails := notify.NewSender(notify.Config{
		Enabled: isTruthy(os.Getenv("ORDER_DETAILS_ENABLED")),
		URL:     strings.TrimSpace(os.Getenv("ORDER_DETAILS_URL")),
	}, httpClient)
	deliveryDetails := notify.NewSender(notify.Config{
		Enabled: isTruthy(os.Getenv("DELIVERY_DETAILS_ENABLED")),
		URL:     strings.TrimSpace(os.Getenv("DELIVERY_DETAILS_URL")),
	}, httpClient)
	reservations := queue.NewPublisher(queue.Config{
		Enabled: isTruthy(os.Getenv("RESERVATIONS_ENABLED")),
		Brokers: platformkafka.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		Topic:   envOrDefault("RESERVATION_TOPIC", platformkafka.ReservationTopic),
	})
	defer reservations.Close()
	fanOutActivities := orderactivities.NewActivities(orderDetails, deliveryDetails, reservations)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
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

	w := worker.New(temporalClient, orderworkflows.OrderFanOutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderFanOutWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderFanOutWorkflowName})
	w.RegisterActivityWithOptions(fanOutActivities.NotifyOrderDetails, activity.RegisterOptions{Name: orderactivities.NotifyOrderDetailsActivityName})
	w.RegisterActivityWithOptions(fanOutActivities.NotifyDeliveryDetails, activity.RegisterOptions{Name: orderactivities.NotifyDeliveryDetailsActivityName})
	w.RegisterActivityWithOptions(fanOutActivities.PublishReservations, activity.RegisterOptions{Name: orderactivities.PublishReservationsActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderFanOutTaskQueue), slog.String("namespace", clientOptions.Namespace))
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

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

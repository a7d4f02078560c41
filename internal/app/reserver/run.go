package reserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/eshopweb/order-pipeline/internal/domains/reservations/adapters/blob"
	"github.com/eshopweb/order-pipeline/internal/domains/reservations/adapters/escalate"
	reservationsapp "github.com/eshopweb/order-pipeline/internal/domains/reservations/application"
	platformkafka "github.com/eshopweb/order-pipeline/internal/platform/kafka"
	platformobservability "github.com/eshopweb/order-pipeline/internal/platform/observability"
)

// Run consumes reservation messages until the context is cancelled. Each
// message is processed independently; a terminal failure on one message
// never stops the loop.
func Run(ctx context.Context) error {
	const serviceName = "order-pipeline-reserver"
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

	store, err := blob.NewStore(cfg.Blob)
	if err != nil {
		return fmt.Errorf("failed to configure blob store: %w", err)
	}
	escalator := escalate.NewWebhook(cfg.EscalationURL, &http.Client{Timeout: 30 * time.Second})
	processor := reservationsapp.NewProcessor(store, escalator,
		reservationsapp.WithProcessorLogger(logger))

	reader := platformkafka.NewReservationReader(cfg.Brokers)
	defer reader.Close()

	logger.Info("reservation consumer listening",
		slog.String("topic", platformkafka.ReservationTopic),
		slog.Any("brokers", cfg.Brokers))

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				logger.Info("reservation consumer stopped")
				return nil
			}
			logger.Error("failed to read reservation message", slog.String("error", err.Error()))
			return err
		}
		// Terminal per-message failures are already escalated; the offset
		// is committed either way and redelivery stays the broker's call.
		if err := processor.Process(ctx, msg.Value); err != nil {
			logger.Error("reservation message failed",
				slog.String("key", string(msg.Key)),
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()))
		}
	}
}

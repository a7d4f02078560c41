package ports

import (
	"context"

	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
)

// Notifier pushes one JSON payload to a single downstream destination.
// Implementations are expected to be no-ops when their destination is
// disabled by configuration.
type Notifier interface {
	Send(ctx context.Context, payload any) error
}

// ReservationPublisher hands the per-line-item reservation requests of
// one order to the warehouse queue.
type ReservationPublisher interface {
	Publish(ctx context.Context, requests []orderstypes.ReservationRequest) error
}

// FanOutOrchestrator runs the post-persistence fan-out for one order,
// either in-process or on a durable workflow engine. The error return is
// for orchestration-level failures only; per-branch outcomes live in the
// report.
type FanOutOrchestrator interface {
	Dispatch(ctx context.Context, order *domain.Order) (*orderstypes.FanOutReport, error)
}

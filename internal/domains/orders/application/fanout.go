package application

import (
	"context"
	"errors"
	"log/slog"

	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
)

// FanOut propagates a freshly persisted order to the downstream systems:
// the order-details sink, the delivery-details sink, and the warehouse
// reservation queue. The branches are independent; a failure in one never
// stops the others, and no failure propagates to the checkout caller.
type FanOut struct {
	orderDetails    ports.Notifier
	deliveryDetails ports.Notifier
	reservations    ports.ReservationPublisher
	logger          *slog.Logger
}

// FanOutOption configures optional FanOut collaborators.
type FanOutOption func(*FanOut)

// WithFanOutLogger injects a slog logger.
func WithFanOutLogger(logger *slog.Logger) FanOutOption {
	return func(f *FanOut) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFanOut wires the three downstream branches.
func NewFanOut(orderDetails, deliveryDetails ports.Notifier, reservations ports.ReservationPublisher, opts ...FanOutOption) *FanOut {
	f := &FanOut{
		orderDetails:    orderDetails,
		deliveryDetails: deliveryDetails,
		reservations:    reservations,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Dispatch runs all three branches for one order and reports each outcome.
// Branch order matches the original flow for log readability only; the
// branches share no state and no branch short-circuits another.
func (f *FanOut) Dispatch(ctx context.Context, order *domain.Order) (*orderstypes.FanOutReport, error) {
	if f == nil {
		return nil, errors.New("fan-out not configured")
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	report := &orderstypes.FanOutReport{OrderID: order.ID}

	report.OrderDetails = orderstypes.NewBranchFailure(f.sendOrderDetails(ctx, order))
	report.DeliveryDetails = orderstypes.NewBranchFailure(f.sendDeliveryDetails(ctx, order))
	report.Reservation = orderstypes.NewBranchFailure(f.publishReservations(ctx, order))

	if report.Failed() {
		f.logger.Warn("order fan-out completed with failures",
			slog.String("order.id", order.ID),
			slog.Any("failures", report.Failures()))
	} else {
		f.logger.Info("order fan-out completed", slog.String("order.id", order.ID))
	}
	return report, nil
}

func (f *FanOut) sendOrderDetails(ctx context.Context, order *domain.Order) error {
	if f.orderDetails == nil {
		return errors.New("order-details notifier not configured")
	}
	return f.orderDetails.Send(ctx, orderstypes.NewOrderDetailsNotice(order))
}

func (f *FanOut) sendDeliveryDetails(ctx context.Context, order *domain.Order) error {
	if f.deliveryDetails == nil {
		return errors.New("delivery-details notifier not configured")
	}
	return f.deliveryDetails.Send(ctx, orderstypes.NewDeliveryDetailsNotice(order))
}

func (f *FanOut) publishReservations(ctx context.Context, order *domain.Order) error {
	if f.reservations == nil {
		return errors.New("reservation publisher not configured")
	}
	return f.reservations.Publish(ctx, orderstypes.NewReservationRequests(order))
}

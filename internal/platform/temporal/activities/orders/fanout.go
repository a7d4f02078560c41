package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	ordersports "github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
)

const (
	// NotifyOrderDetailsActivityName posts the order summary to its sink.
	NotifyOrderDetailsActivityName = "orders.activities.NotifyOrderDetails"
	// NotifyDeliveryDetailsActivityName posts the delivery summary to its sink.
	NotifyDeliveryDetailsActivityName = "orders.activities.NotifyDeliveryDetails"
	// PublishReservationsActivityName enqueues warehouse reservation requests.
	PublishReservationsActivityName = "orders.activities.PublishReservations"
)

// Activities groups the fan-out side effects of order creation. Each
// activity covers exactly one downstream so a branch failure stays
// isolated in workflow history.
type Activities struct {
	orderDetails    ordersports.Notifier
	deliveryDetails ordersports.Notifier
	reservations    ordersports.ReservationPublisher
}

// NewActivities wires the fan-out collaborators into the Temporal activities bundle.
func NewActivities(orderDetails, deliveryDetails ordersports.Notifier, reservations ordersports.ReservationPublisher) *Activities {
	return &Activities{
		orderDetails:    orderDetails,
		deliveryDetails: deliveryDetails,
		reservations:    reservations,
	}
}

// NotifyOrderDetails delivers the order summary notification.
func (a *Activities) NotifyOrderDetails(ctx context.Context, notice orderstypes.OrderDetailsNotice) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orderDetails == nil {
		logger.Error("order details activity not initialized", "orderId", notice.ID)
		return errors.New("order details activity not initialized")
	}
	logger.Info("NotifyOrderDetails activity started", "orderId", notice.ID)
	if err := a.orderDetails.Send(ctx, notice); err != nil {
		logger.Error("NotifyOrderDetails activity failed", "orderId", notice.ID, "error", err)
		return err
	}
	logger.Info("NotifyOrderDetails activity completed", "orderId", notice.ID)
	return nil
}

// NotifyDeliveryDetails delivers the delivery summary notification.
func (a *Activities) NotifyDeliveryDetails(ctx context.Context, notice orderstypes.DeliveryDetailsNotice) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.deliveryDetails == nil {
		logger.Error("delivery details activity not initialized")
		return errors.New("delivery details activity not initialized")
	}
	logger.Info("NotifyDeliveryDetails activity started", "shippingAddress", notice.ShippingAddress)
	if err := a.deliveryDetails.Send(ctx, notice); err != nil {
		logger.Error("NotifyDeliveryDetails activity failed", "error", err)
		return err
	}
	logger.Info("NotifyDeliveryDetails activity completed")
	return nil
}

// PublishReservations enqueues one reservation request per line item.
func (a *Activities) PublishReservations(ctx context.Context, requests []orderstypes.ReservationRequest) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.reservations == nil {
		logger.Error("reservation publish activity not initialized")
		return errors.New("reservation publish activity not initialized")
	}
	logger.Info("PublishReservations activity started", "requests", len(requests))
	if err := a.reservations.Publish(ctx, requests); err != nil {
		logger.Error("PublishReservations activity failed", "error", err)
		return err
	}
	logger.Info("PublishReservations activity completed", "requests", len(requests))
	return nil
}

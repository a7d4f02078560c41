package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	orderactivities "github.com/eshopweb/order-pipeline/internal/platform/temporal/activities/orders"
)

// OrderFanOutInput carries the pre-built downstream payloads. Payloads are
// built before the workflow starts so the workflow stays deterministic.
type OrderFanOutInput struct {
	OrderID         string
	OrderDetails    orderstypes.OrderDetailsNotice
	DeliveryDetails orderstypes.DeliveryDetailsNotice
	Reservations    []orderstypes.ReservationRequest
}

// RunOrderFanOutSequence executes the three fan-out branches in order. Every
// branch runs exactly once regardless of earlier failures; per-branch
// outcomes land in the report instead of failing the sequence. Delivery is
// attempt-once end to end, so MaximumAttempts stays at 1.
func RunOrderFanOutSequence(ctx workflow.Context, input OrderFanOutInput) (*orderstypes.FanOutReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order fan-out sequence started", "orderId", input.OrderID)

	branchOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, branchOptions)

	report := &orderstypes.FanOutReport{OrderID: input.OrderID}

	if err := workflow.ExecuteActivity(ctx, orderactivities.NotifyOrderDetailsActivityName, input.OrderDetails).Get(ctx, nil); err != nil {
		logger.Error("order details branch failed", "orderId", input.OrderID, "error", err)
		report.OrderDetails = orderstypes.NewBranchFailure(err)
	}
	if err := workflow.ExecuteActivity(ctx, orderactivities.NotifyDeliveryDetailsActivityName, input.DeliveryDetails).Get(ctx, nil); err != nil {
		logger.Error("delivery details branch failed", "orderId", input.OrderID, "error", err)
		report.DeliveryDetails = orderstypes.NewBranchFailure(err)
	}
	if err := workflow.ExecuteActivity(ctx, orderactivities.PublishReservationsActivityName, input.Reservations).Get(ctx, nil); err != nil {
		logger.Error("reservation branch failed", "orderId", input.OrderID, "error", err)
		report.Reservation = orderstypes.NewBranchFailure(err)
	}

	if report.Failed() {
		logger.Warn("order fan-out sequence completed with failures", "orderId", input.OrderID, "failures", report.Failures())
	} else {
		logger.Info("order fan-out sequence completed", "orderId", input.OrderID)
	}
	return report, nil
}

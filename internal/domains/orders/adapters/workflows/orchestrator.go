package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/application"
	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
	"github.com/eshopweb/order-pipeline/internal/platform/temporal/sequences"
	orderworkflows "github.com/eshopweb/order-pipeline/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.FanOutOrchestrator = (*TemporalFanOut)(nil)
	_ ports.FanOutOrchestrator = (*InlineFanOut)(nil)
)

// TemporalFanOut starts the fan-out workflow on a Temporal cluster. The
// workflow ID is derived from the order ID, so one order fans out at most
// once even if the caller retries the dispatch.
type TemporalFanOut struct {
	client    client.Client
	taskQueue string
}

// NewTemporalFanOut wires a Temporal client into the orchestrator.
func NewTemporalFanOut(c client.Client) *TemporalFanOut {
	return &TemporalFanOut{client: c, taskQueue: orderworkflows.OrderFanOutTaskQueue}
}

// Dispatch starts the fan-out workflow and waits for its report.
func (o *TemporalFanOut) Dispatch(ctx context.Context, order *domain.Order) (*orderstypes.FanOutReport, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal fan-out not configured")
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	workflowID := fmt.Sprintf("order-fanout-%s", order.ID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	input := orderworkflows.OrderFanOutWorkflowInput{
		Command: sequences.OrderFanOutInput{
			OrderID:         order.ID,
			OrderDetails:    orderstypes.NewOrderDetailsNotice(order),
			DeliveryDetails: orderstypes.NewDeliveryDetailsNotice(order),
			Reservations:    orderstypes.NewReservationRequests(order),
		},
		TraceID: workflowTraceID(ctx),
	}
	run, err := o.client.ExecuteWorkflow(ctx, options, orderworkflows.OrderFanOutWorkflow, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var report orderstypes.FanOutReport
			if err := existingRun.Get(ctx, &report); err != nil {
				return nil, err
			}
			return &report, nil
		}
		return nil, err
	}
	var report orderstypes.FanOutReport
	if err := run.Get(ctx, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// InlineFanOut runs the fan-out in-process without Temporal, useful for
// tests or dev fallbacks.
type InlineFanOut struct {
	fanout *application.FanOut
}

// NewInlineFanOut wraps the fan-out dispatcher for synchronous execution.
func NewInlineFanOut(fanout *application.FanOut) *InlineFanOut {
	return &InlineFanOut{fanout: fanout}
}

// Dispatch delegates to the in-process dispatcher without durable orchestration.
func (o *InlineFanOut) Dispatch(ctx context.Context, order *domain.Order) (*orderstypes.FanOutReport, error) {
	if o == nil || o.fanout == nil {
		return nil, errors.New("inline fan-out not configured")
	}
	return o.fanout.Dispatch(ctx, order)
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return spanCtx.TraceID().String()
}

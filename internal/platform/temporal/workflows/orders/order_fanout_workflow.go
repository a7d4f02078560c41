package orders

import (
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	"github.com/eshopweb/order-pipeline/internal/platform/temporal/sequences"
)

const (
	// OrderFanOutWorkflowName is the public identifier for registering the workflow.
	OrderFanOutWorkflowName = "orders.workflows.FanOut"
	// OrderFanOutTaskQueue is the queue consumed by the worker processing fan-out workflows.
	OrderFanOutTaskQueue = "ORDER_FANOUT"
)

// OrderFanOutWorkflowInput captures the payload required to fan out a created order.
type OrderFanOutWorkflowInput struct {
	Command sequences.OrderFanOutInput
	TraceID string
}

// OrderFanOutWorkflow orchestrates the downstream deliveries for one created order.
func OrderFanOutWorkflow(ctx workflow.Context, input OrderFanOutWorkflowInput) (*orderstypes.FanOutReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderFanOutWorkflow started", withTraceID(input.TraceID, "orderId", input.Command.OrderID)...)
	report, err := sequences.RunOrderFanOutSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderFanOutWorkflow failed", withTraceID(input.TraceID, "orderId", input.Command.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderFanOutWorkflow completed", withTraceID(input.TraceID, "orderId", input.Command.OrderID)...)
	return report, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}

package ports

import (
	"context"

	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
)

// Service exposes the orders use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.OrderProjection, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}

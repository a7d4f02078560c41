package application

import (
	"context"
	"errors"
	"fmt"

	basketports "github.com/eshopweb/order-pipeline/internal/domains/baskets/ports"
	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
)

// Service orchestrates the checkout use case: basket lookup, order
// construction, persistence, then the downstream fan-out. Fan-out
// failures never fail the checkout; the order is already durable by the
// time the fan-out starts, and each branch's outcome is returned in the
// projection for the caller to inspect.
type Service struct {
	orders  ports.Repository
	baskets basketports.Repository
	fanout  ports.FanOutOrchestrator
}

// NewService wires the checkout collaborators.
func NewService(orders ports.Repository, baskets basketports.Repository, fanout ports.FanOutOrchestrator) *Service {
	return &Service{orders: orders, baskets: baskets, fanout: fanout}
}

func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.OrderProjection, error) {
	basket, err := s.baskets.GetByID(ctx, input.BasketID)
	if err != nil {
		if errors.Is(err, basketports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBasketNotFound, input.BasketID)
		}
		return nil, err
	}
	if err := basket.EnsureCheckoutReady(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBasket, basket.ID)
	}

	items := make([]domain.OrderItem, 0, len(basket.Items))
	for _, bi := range basket.Items {
		items = append(items, domain.OrderItem{
			ProductID:   bi.ProductID,
			ProductName: bi.ProductName,
			UnitPrice:   bi.UnitPrice,
			Units:       bi.Quantity,
		})
	}
	order, err := domain.NewOrder(basket.BuyerID, input.ShipTo.ToAddress(), items)
	if err != nil {
		return nil, mapError(err)
	}

	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	report := s.dispatchFanOut(ctx, saved)
	return &orderstypes.OrderProjection{Order: saved, FanOut: report}, nil
}

// dispatchFanOut never returns an error: by contract the order is placed
// once persisted, whatever happens downstream. An orchestration-level
// failure marks every branch as undelivered.
func (s *Service) dispatchFanOut(ctx context.Context, order *domain.Order) *orderstypes.FanOutReport {
	if s.fanout == nil {
		return nil
	}
	report, err := s.fanout.Dispatch(ctx, order)
	if err != nil {
		failure := orderstypes.NewBranchFailure(err)
		return &orderstypes.FanOutReport{
			OrderID:         order.ID,
			OrderDetails:    failure,
			DeliveryDetails: failure,
			Reservation:     failure,
		}
	}
	return report
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

var _ ports.Service = (*Service)(nil)

package ports

import (
	"context"
	"errors"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists the order aggregate.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

package ports

import (
	"context"
	"errors"

	"github.com/eshopweb/order-pipeline/internal/domains/baskets/domain"
)

var ErrNotFound = errors.New("basket not found")

// Repository stores baskets between selection and checkout.
type Repository interface {
	Save(ctx context.Context, basket *domain.Basket) (*domain.Basket, error)
	GetByID(ctx context.Context, id string) (*domain.Basket, error)
	Delete(ctx context.Context, id string) error
}

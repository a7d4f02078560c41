package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/eshopweb/order-pipeline/internal/domains/baskets/domain"
	"github.com/eshopweb/order-pipeline/internal/domains/baskets/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory basket store.
type Repository struct {
	mu      sync.RWMutex
	baskets map[string]*domain.Basket
}

func NewRepository() *Repository {
	return &Repository{baskets: map[string]*domain.Basket{}}
}

func (r *Repository) Save(_ context.Context, basket *domain.Basket) (*domain.Basket, error) {
	if basket == nil {
		return nil, errors.New("basket is nil")
	}
	clone := cloneBasket(basket)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baskets[clone.ID] = clone
	return cloneBasket(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Basket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	basket, ok := r.baskets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneBasket(basket), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.baskets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.baskets, id)
	return nil
}

func cloneBasket(basket *domain.Basket) *domain.Basket {
	clone := *basket
	clone.Items = make([]domain.BasketItem, len(basket.Items))
	copy(clone.Items, basket.Items)
	return &clone
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
)

func newOrder(t *testing.T) *domain.Order {
	t.Helper()

	order, err := domain.NewOrder("buyer-1", domain.Address{Street: "123 Main St", City: "Springfield"}, []domain.OrderItem{
		{ProductID: "p-1", ProductName: "Widget", UnitPrice: decimal.NewFromFloat(9.99), Units: 2},
	})
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	repo := NewRepository()
	order := newOrder(t)

	saved, err := repo.Save(context.Background(), order)
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, order.BuyerID, got.BuyerID)
	assert.True(t, got.Total().Equal(decimal.NewFromFloat(19.98)))
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_Save_ReturnsCopy(t *testing.T) {
	repo := NewRepository()
	order := newOrder(t)

	saved, err := repo.Save(context.Background(), order)
	require.NoError(t, err)

	saved.Items[0].ProductName = "mutated"

	got, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Items[0].ProductName)
}

func TestRepository_List_NewestFirst(t *testing.T) {
	repo := NewRepository()

	first := newOrder(t)
	first.CreatedAt = time.Now().Add(-time.Hour)
	second := newOrder(t)

	_, err := repo.Save(context.Background(), first)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), second)
	require.NoError(t, err)

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

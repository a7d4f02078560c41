package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
)

// The sinks are external systems with fixed contracts; these tests pin the
// exact bytes on the wire, bare numbers included.
func TestNotificationWireFormats(t *testing.T) {
	order := &domain.Order{
		ID:      "ord-1",
		BuyerID: "buyer@example.com",
		ShipTo:  domain.Address{Street: "123 Main St"},
		Items: []domain.OrderItem{
			{ID: "A", ProductID: "p-1", ProductName: "Widget", UnitPrice: decimal.NewFromFloat(9.99), Units: 2},
		},
	}

	details, err := json.Marshal(NewOrderDetailsNotice(order))
	require.NoError(t, err)
	assert.Equal(t, `{"id":"ord-1","quantity":1}`, string(details))

	delivery, err := json.Marshal(NewDeliveryDetailsNotice(order))
	require.NoError(t, err)
	assert.Equal(t, `{"shippingAddress":"123 Main St","items":["Widget"],"finalPrice":19.98}`, string(delivery))

	reservations := NewReservationRequests(order)
	require.Len(t, reservations, 1)
	message, err := json.Marshal(reservations[0])
	require.NoError(t, err)
	assert.Equal(t, `{"itemId":"A","quantity":2}`, string(message))
}

func TestOrderDetailsQuantityCountsLineItems(t *testing.T) {
	order := &domain.Order{
		ID: "ord-2",
		Items: []domain.OrderItem{
			{ID: "A", ProductName: "Widget", UnitPrice: decimal.NewFromFloat(1.00), Units: 7},
			{ID: "B", ProductName: "Gadget", UnitPrice: decimal.NewFromFloat(2.00), Units: 3},
		},
	}

	notice := NewOrderDetailsNotice(order)

	// Two line items, ten total units: the sink wants the former.
	assert.Equal(t, 2, notice.Quantity)
}

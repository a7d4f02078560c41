package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() Address {
	return Address{Street: "123 Main St", City: "Kent", State: "WA", Country: "United States", ZipCode: "98042"}
}

func TestNewOrder_AssignsIdentities(t *testing.T) {
	order, err := NewOrder("buyer@example.com", validAddress(), []OrderItem{
		{ProductName: "Widget", UnitPrice: decimal.RequireFromString("9.99"), Units: 2},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	require.Len(t, order.Items, 1)
	assert.NotEmpty(t, order.Items[0].ID)
}

func TestNewOrder_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		buyer   string
		shipTo  Address
		items   []OrderItem
		wantErr error
	}{
		{
			name:    "missing buyer",
			buyer:   " ",
			shipTo:  validAddress(),
			items:   []OrderItem{{ProductName: "Widget", UnitPrice: decimal.NewFromInt(1), Units: 1}},
			wantErr: ErrMissingBuyer,
		},
		{
			name:    "empty items",
			buyer:   "buyer",
			shipTo:  validAddress(),
			items:   nil,
			wantErr: ErrNoItems,
		},
		{
			name:    "zero units",
			buyer:   "buyer",
			shipTo:  validAddress(),
			items:   []OrderItem{{ProductName: "Widget", UnitPrice: decimal.NewFromInt(1), Units: 0}},
			wantErr: ErrInvalidUnits,
		},
		{
			name:    "negative price",
			buyer:   "buyer",
			shipTo:  validAddress(),
			items:   []OrderItem{{ProductName: "Widget", UnitPrice: decimal.NewFromInt(-1), Units: 1}},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "incomplete address",
			buyer:   "buyer",
			shipTo:  Address{Street: "123 Main St"},
			items:   []OrderItem{{ProductName: "Widget", UnitPrice: decimal.NewFromInt(1), Units: 1}},
			wantErr: ErrIncompleteAddress,
		},
		{
			name:    "unnamed product",
			buyer:   "buyer",
			shipTo:  validAddress(),
			items:   []OrderItem{{UnitPrice: decimal.NewFromInt(1), Units: 1}},
			wantErr: ErrMissingProductName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.buyer, tt.shipTo, tt.items)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOrder_Total_DecimalExact(t *testing.T) {
	// 0.1-style prices drift under float64; the total must stay exact.
	order, err := NewOrder("buyer", validAddress(), []OrderItem{
		{ProductName: "Widget", UnitPrice: decimal.RequireFromString("9.99"), Units: 2},
		{ProductName: "Gadget", UnitPrice: decimal.RequireFromString("0.10"), Units: 3},
	})
	require.NoError(t, err)
	assert.True(t, order.Total().Equal(decimal.RequireFromString("20.28")), "got %s", order.Total())
}

func TestOrder_ProductNames_PreservesOrder(t *testing.T) {
	order, err := NewOrder("buyer", validAddress(), []OrderItem{
		{ProductName: "Widget", UnitPrice: decimal.NewFromInt(1), Units: 1},
		{ProductName: "Gadget", UnitPrice: decimal.NewFromInt(2), Units: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget", "Gadget"}, order.ProductNames())
}

func TestAddress_String(t *testing.T) {
	assert.Equal(t, "123 Main St, Kent, WA, United States, 98042", validAddress().String())
	assert.Equal(t, "123 Main St, Kent", Address{Street: "123 Main St", City: "Kent"}.String())
}

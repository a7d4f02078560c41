package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingBuyer       = errors.New("order buyer id is required")
	ErrNoItems            = errors.New("order must contain at least one item")
	ErrInvalidUnits       = errors.New("order item units must be at least one")
	ErrMissingProductName = errors.New("order item product name is required")
	ErrNegativePrice      = errors.New("order item unit price must not be negative")
	ErrIncompleteAddress  = errors.New("shipping address is incomplete")
)

// Address is the structured shipping destination of an order.
type Address struct {
	Street  string
	City    string
	State   string
	Country string
	ZipCode string
}

// String renders the address the way downstream delivery sinks expect it.
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.Country, a.ZipCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

func (a Address) validate() error {
	if strings.TrimSpace(a.Street) == "" || strings.TrimSpace(a.City) == "" {
		return ErrIncompleteAddress
	}
	return nil
}

// OrderItem is a priced line item snapshot taken at checkout time.
type OrderItem struct {
	ID          string
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Units       int
}

// Subtotal is unit price times units, in decimal arithmetic.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Units)))
}

// Order is the purchase aggregate handed to the fan-out pipeline after
// persistence. The pipeline treats it as an immutable snapshot.
type Order struct {
	ID        string
	BuyerID   string
	ShipTo    Address
	Items     []OrderItem
	CreatedAt time.Time
}

// NewOrder validates and constructs an order with fresh identities for
// the aggregate and each line item.
func NewOrder(buyerID string, shipTo Address, items []OrderItem) (*Order, error) {
	order := &Order{
		ID:        uuid.NewString(),
		BuyerID:   strings.TrimSpace(buyerID),
		ShipTo:    shipTo,
		Items:     make([]OrderItem, len(items)),
		CreatedAt: time.Now().UTC(),
	}
	copy(order.Items, items)
	for idx := range order.Items {
		if order.Items[idx].ID == "" {
			order.Items[idx].ID = uuid.NewString()
		}
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.BuyerID == "" {
		return ErrMissingBuyer
	}
	if err := o.ShipTo.validate(); err != nil {
		return err
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return ErrMissingProductName
		}
		if item.Units < 1 {
			return ErrInvalidUnits
		}
		if item.UnitPrice.IsNegative() {
			return ErrNegativePrice
		}
	}
	return nil
}

// Total is the final price of the order: the sum of all line subtotals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ProductNames lists the product name of every line item in order.
func (o *Order) ProductNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		names = append(names, item.ProductName)
	}
	return names
}

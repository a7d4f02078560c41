package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingBuyer = errors.New("basket buyer id is required")
	ErrEmptyBasket  = errors.New("basket has no items")
)

// BasketItem is a product selection with the catalog snapshot needed at
// checkout (name and unit price travel with the item).
type BasketItem struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Basket collects a buyer's selections until checkout.
type Basket struct {
	ID      string
	BuyerID string
	Items   []BasketItem
}

// NewBasket creates a basket for a buyer.
func NewBasket(buyerID string, items []BasketItem) (*Basket, error) {
	if strings.TrimSpace(buyerID) == "" {
		return nil, ErrMissingBuyer
	}
	return &Basket{ID: uuid.NewString(), BuyerID: strings.TrimSpace(buyerID), Items: items}, nil
}

// EnsureCheckoutReady guards against checking out an empty basket.
func (b *Basket) EnsureCheckoutReady() error {
	if len(b.Items) == 0 {
		return ErrEmptyBasket
	}
	return nil
}

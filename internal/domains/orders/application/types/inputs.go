package types

import "github.com/eshopweb/order-pipeline/internal/domains/orders/domain"

// AddressInput carries the shipping destination supplied at checkout.
type AddressInput struct {
	Street  string
	City    string
	State   string
	Country string
	ZipCode string
}

// ToAddress converts the input into the domain address value.
func (a AddressInput) ToAddress() domain.Address {
	return domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Country: a.Country,
		ZipCode: a.ZipCode,
	}
}

// CreateOrderInput is the checkout command: a basket plus a destination.
type CreateOrderInput struct {
	BasketID string
	ShipTo   AddressInput
}

// OrderProjection is the checkout result: the persisted order and the
// outcome of each downstream fan-out branch.
type OrderProjection struct {
	Order  *domain.Order
	FanOut *FanOutReport
}

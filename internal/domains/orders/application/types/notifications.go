package types

import (
	"github.com/shopspring/decimal"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
)

func init() {
	// The downstream sinks read money and quantity fields as bare JSON
	// numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// OrderDetailsNotice is the payload POSTed to the order-details sink.
// Quantity counts distinct line items, not total units.
type OrderDetailsNotice struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// DeliveryDetailsNotice is the payload POSTed to the delivery-details sink.
type DeliveryDetailsNotice struct {
	ShippingAddress string          `json:"shippingAddress"`
	Items           []string        `json:"items"`
	FinalPrice      decimal.Decimal `json:"finalPrice"`
}

// ReservationRequest asks the warehouse to reserve units for one line item.
// ItemID is the order line-item id, not the catalog product id.
type ReservationRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// NewOrderDetailsNotice builds the order-details payload from an order snapshot.
func NewOrderDetailsNotice(order *domain.Order) OrderDetailsNotice {
	return OrderDetailsNotice{ID: order.ID, Quantity: len(order.Items)}
}

// NewDeliveryDetailsNotice builds the delivery-details payload from an order snapshot.
func NewDeliveryDetailsNotice(order *domain.Order) DeliveryDetailsNotice {
	return DeliveryDetailsNotice{
		ShippingAddress: order.ShipTo.String(),
		Items:           order.ProductNames(),
		FinalPrice:      order.Total(),
	}
}

// NewReservationRequests builds one reservation request per line item.
func NewReservationRequests(order *domain.Order) []ReservationRequest {
	requests := make([]ReservationRequest, 0, len(order.Items))
	for _, item := range order.Items {
		requests = append(requests, ReservationRequest{ItemID: item.ID, Quantity: item.Units})
	}
	return requests
}

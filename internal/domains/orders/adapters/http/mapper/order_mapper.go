package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	ordersdomain "github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
)

// Address is the transport-layer shipping destination.
type Address struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// CreateOrderRequest is the checkout request body.
type CreateOrderRequest struct {
	BasketID string  `json:"basketId" binding:"required"`
	ShipTo   Address `json:"shipTo" binding:"required"`
}

// OrderItem is the transport view of one line item.
type OrderItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Units       int             `json:"units"`
}

// Order is the transport view of a persisted order.
type Order struct {
	ID        string          `json:"id"`
	BuyerID   string          `json:"buyerId"`
	ShipTo    Address         `json:"shipTo"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateOrderResponse pairs the persisted order with the outcome of each
// downstream delivery branch.
type CreateOrderResponse struct {
	Order  Order             `json:"order"`
	FanOut map[string]string `json:"fanOutFailures,omitempty"`
}

// ToCreateOrderInput converts the request body into the checkout command.
func ToCreateOrderInput(req CreateOrderRequest) orderstypes.CreateOrderInput {
	return orderstypes.CreateOrderInput{
		BasketID: req.BasketID,
		ShipTo: orderstypes.AddressInput{
			Street:  req.ShipTo.Street,
			City:    req.ShipTo.City,
			State:   req.ShipTo.State,
			Country: req.ShipTo.Country,
			ZipCode: req.ShipTo.ZipCode,
		},
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Units:       item.Units,
		})
	}
	return Order{
		ID:      order.ID,
		BuyerID: order.BuyerID,
		ShipTo: Address{
			Street:  order.ShipTo.Street,
			City:    order.ShipTo.City,
			State:   order.ShipTo.State,
			Country: order.ShipTo.Country,
			ZipCode: order.ShipTo.ZipCode,
		},
		Items:     items,
		Total:     order.Total(),
		CreatedAt: order.CreatedAt,
	}
}

// FromProjection converts the checkout result to the response body.
func FromProjection(projection *orderstypes.OrderProjection) CreateOrderResponse {
	if projection == nil {
		return CreateOrderResponse{}
	}
	resp := CreateOrderResponse{Order: FromDomainOrder(projection.Order)}
	if projection.FanOut != nil && projection.FanOut.Failed() {
		resp.FanOut = projection.FanOut.Failures()
	}
	return resp
}

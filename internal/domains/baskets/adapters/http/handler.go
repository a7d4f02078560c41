// Package http exposes basket creation and lookup over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	basketsdomain "github.com/eshopweb/order-pipeline/internal/domains/baskets/domain"
	basketsports "github.com/eshopweb/order-pipeline/internal/domains/baskets/ports"
	sharederrors "github.com/eshopweb/order-pipeline/internal/shared/errors"
)

// Item is the transport view of one basket line.
type Item struct {
	ProductID   string          `json:"productId" binding:"required"`
	ProductName string          `json:"productName" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
}

// CreateBasketRequest is the basket creation request body.
type CreateBasketRequest struct {
	BuyerID string `json:"buyerId" binding:"required"`
	Items   []Item `json:"items"`
}

// Basket is the transport view of a stored basket.
type Basket struct {
	ID      string `json:"id"`
	BuyerID string `json:"buyerId"`
	Items   []Item `json:"items"`
}

// Handler serves the basket endpoints.
type Handler struct {
	baskets   basketsports.Repository
	responder *sharederrors.Responder
}

func NewHandler(baskets basketsports.Repository) *Handler {
	return &Handler{
		baskets:   baskets,
		responder: sharederrors.NewResponder(""),
	}
}

// Register mounts the basket routes on the given router group.
func (h *Handler) Register(group *gin.RouterGroup) {
	group.POST("/baskets", h.CreateBasket)
	group.GET("/baskets/:basketId", h.GetBasketByID)
}

func (h *Handler) CreateBasket(c *gin.Context) {
	var req CreateBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	items := make([]basketsdomain.BasketItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, basketsdomain.BasketItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	basket, err := basketsdomain.NewBasket(req.BuyerID, items)
	if err != nil {
		h.responder.Respond(c, sharederrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	saved, err := h.baskets.Save(c.Request.Context(), basket)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(saved))
}

func (h *Handler) GetBasketByID(c *gin.Context) {
	id := c.Param("basketId")
	basket, err := h.baskets.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, basketsports.ErrNotFound) {
			h.responder.NotFound(c, "basket", id)
			return
		}
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(basket))
}

func fromDomain(basket *basketsdomain.Basket) Basket {
	if basket == nil {
		return Basket{}
	}
	items := make([]Item, 0, len(basket.Items))
	for _, item := range basket.Items {
		items = append(items, Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return Basket{ID: basket.ID, BuyerID: basket.BuyerID, Items: items}
}

// Package http exposes the orders use cases over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/http/mapper"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/application"
	ordersports "github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
	sharederrors "github.com/eshopweb/order-pipeline/internal/shared/errors"
)

// Handler serves the order endpoints.
type Handler struct {
	service   ordersports.Service
	responder *sharederrors.Responder
}

// NewHandler builds the order handler with application-error mapping.
func NewHandler(service ordersports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: sharederrors.NewResponder("", mapApplicationError),
	}
}

// Register mounts the order routes on the given router group.
func (h *Handler) Register(group *gin.RouterGroup) {
	group.POST("/orders", h.CreateOrder)
	group.GET("/orders", h.ListOrders)
	group.GET("/orders/:orderId", h.GetOrderByID)
}

// CreateOrder checks out a basket into a persisted order and reports the
// outcome of the downstream fan-out alongside it.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req mapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	projection, err := h.service.CreateOrder(c.Request.Context(), mapper.ToCreateOrderInput(req))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromProjection(projection))
}

func (h *Handler) GetOrderByID(c *gin.Context) {
	id := c.Param("orderId")
	order, err := h.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ordersports.ErrNotFound) {
			h.responder.NotFound(c, "order", id)
			return
		}
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	resp := make([]mapper.Order, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, mapper.FromDomainOrder(order))
	}
	c.JSON(http.StatusOK, resp)
}

func mapApplicationError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrBasketNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrEmptyBasket):
		return sharederrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

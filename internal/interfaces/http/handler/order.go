package handler

import (
	"context"

	orderapp "github.com/gearshop/backend/internal/application/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles checkout and order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	checkout *orderapp.CheckoutService
	orders   *orderapp.OrderService
	payments *orderapp.PaymentService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkout *orderapp.CheckoutService, orders *orderapp.OrderService, payments *orderapp.PaymentService) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		payments: payments,
	}
}

// RegisterRoutes registers checkout, order and payment routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.POST("/quote", h.Quote)
		checkout.POST("/orders", h.PlaceOrder)
	}
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.GET("/tracking/:code", h.GetByTrackingCode)
		orders.GET("/customer/:id", h.ListByCustomer)
		orders.POST("/:id/cancel", h.Cancel)
		orders.POST("/:id/process", h.StartProcessing)
		orders.POST("/:id/ship", h.Ship)
		orders.POST("/:id/deliver", h.Deliver)
	}
	payments := rg.Group("/payments")
	{
		payments.GET("/callback", h.PaymentCallback)
	}
	rg.GET("/shipping-methods", h.ListShippingMethods)
}

// Quote prices a basket without placing an order
func (h *OrderHandler) Quote(c *gin.Context) {
	var req orderapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	quote, err := h.checkout.Quote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// PlaceOrder creates a pending order with reserved stock and returns
// the payment redirect
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// PaymentCallback finalizes an order after the gateway redirect
func (h *OrderHandler) PaymentCallback(c *gin.Context) {
	var req orderapp.PaymentCallbackRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.payments.HandleCallback(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List retrieves a paginated order list
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID retrieves an order by ID
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, o)
}

// GetByTrackingCode retrieves an order by its public tracking code
func (h *OrderHandler) GetByTrackingCode(c *gin.Context) {
	o, err := h.orders.GetOrderByTrackingCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, o)
}

// ListByCustomer retrieves the orders of one customer
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.orders.ListCustomerOrders(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Cancel aborts a pending or paid order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	o, err := h.orders.CancelOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, o)
}

// StartProcessing moves a paid order into fulfilment
func (h *OrderHandler) StartProcessing(c *gin.Context) {
	h.transition(c, h.orders.StartProcessing)
}

// Ship marks an order as handed to the carrier
func (h *OrderHandler) Ship(c *gin.Context) {
	h.transition(c, h.orders.ShipOrder)
}

// Deliver marks an order as received by the customer
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.transition(c, h.orders.DeliverOrder)
}

// ListShippingMethods retrieves the available shipping methods
func (h *OrderHandler) ListShippingMethods(c *gin.Context) {
	methods, err := h.orders.ListShippingMethods(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, methods)
}

func (h *OrderHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error)) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	o, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, o)
}

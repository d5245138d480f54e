package handler

import (
	"net/http"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/middleware"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/order")
	{
		orders.GET("", h.GetOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}

// GetOrders lists orders with their computed totals
// @Summary      List orders
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Param        status      query     string  false  "Order status"
// @Param        customerId  query     string  false  "Customer ID"
// @Param        search      query     string  false  "Search by customer name"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Router       /order [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	p, page := pageOf(c)
	orders, total, err := h.orderService.ListOrders(c.Request.Context(), service.OrderQuery{
		Status:     c.Query("status"),
		CustomerID: c.Query("customerId"),
		Search:     c.Query("search"),
		Page:       page,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List("Orders fetched successfully", "orders", orders, p.Meta(total)))
}

// GetOrder returns one order
// @Summary      Get order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{order=service.OrderResponse}
// @Failure      404  {object}  response.Response
// @Router       /order/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Order fetched successfully", "order", order))
}

// CreateOrder places an order and deducts its items from product stock
// @Summary      Create order
// @Description  Deducts every item from the product color's stock in one transaction
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.OrderRequest  true  "Order"
// @Success      201      {object}  response.Response{order=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response  "Insufficient stock"
// @Router       /order [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Order created successfully", "order", order))
}

// UpdateOrder fully replaces an order including its items and status
// @Summary      Update order
// @Description  Stock moves by the net difference between the old and new items
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Order ID"
// @Param        payload  body      service.OrderRequest  true  "Order"
// @Success      200      {object}  response.Response{order=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response  "Refused transition or insufficient stock"
// @Router       /order/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), middleware.Actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Order updated successfully", "order", order))
}

// DeleteOrder removes an order and puts its stock back
// @Summary      Delete order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response  "Order has returns"
// @Router       /order/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Order deleted successfully", "", nil))
}

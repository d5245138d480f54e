package handler

import (
	"net/http"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/middleware"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService service.CustomerService
	orderService    service.OrderService
}

func NewCustomerHandler(customerService service.CustomerService, orderService service.OrderService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, orderService: orderService}
}

func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/customer")
	{
		customers.GET("", h.GetCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
		customers.GET("/:id/orders", h.GetCustomerOrders)
	}
}

// GetCustomers lists customers
// @Summary      List customers
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Param        type    query     string  false  "Wholesale or Retail"
// @Param        search  query     string  false  "Search name, phone, email or city"
// @Success      200     {object}  response.Response
// @Router       /customer [get]
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	p, page := pageOf(c)
	customers, total, err := h.customerService.ListCustomers(c.Request.Context(), service.CustomerQuery{
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Page:   page,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List("Customers fetched successfully", "customers", customers, p.Meta(total)))
}

// GetCustomer returns one customer
// @Summary      Get customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.Response{customer=model.Customer}
// @Failure      404  {object}  response.Response
// @Router       /customer/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Customer fetched successfully", "customer", customer))
}

// CreateCustomer adds a customer
// @Summary      Create customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CustomerRequest  true  "Customer"
// @Success      201      {object}  response.Response{customer=model.Customer}
// @Failure      400      {object}  response.Response
// @Router       /customer [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Customer created successfully", "customer", customer))
}

// UpdateCustomer replaces a customer's details
// @Summary      Update customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Customer ID"
// @Param        payload  body      service.CustomerRequest  true  "Customer"
// @Success      200      {object}  response.Response{customer=model.Customer}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /customer/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), middleware.Actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Customer updated successfully", "customer", customer))
}

// DeleteCustomer soft deletes a customer; their orders are kept
// @Summary      Delete customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /customer/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Customer deleted successfully", "", nil))
}

// GetCustomerOrders lists the orders linked to a customer
// @Summary      Customer orders
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Customer ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Items per page (default 20)"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /customer/{id}/orders [get]
func (h *CustomerHandler) GetCustomerOrders(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	p, page := pageOf(c)
	orders, total, err := h.orderService.ListOrders(c.Request.Context(), service.OrderQuery{
		CustomerID: customer.ID.String(),
		Status:     c.Query("status"),
		Page:       page,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List("Customer orders fetched successfully", "orders", orders, p.Meta(total)))
}

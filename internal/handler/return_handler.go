package handler

import (
	"net/http"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/middleware"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReturnHandler struct {
	returnService service.ReturnService
}

func NewReturnHandler(returnService service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

func (h *ReturnHandler) RegisterRoutes(router *gin.RouterGroup) {
	returns := router.Group("/returns")
	{
		returns.GET("", h.GetReturns)
		returns.POST("", h.CreateReturn)
		returns.GET("/:id", h.GetReturn)
		returns.PUT("/:id", h.UpdateReturn)
		returns.DELETE("/:id", h.DeleteReturn)
	}
}

// GetReturns lists returns
// @Summary      List returns
// @Tags         returns
// @Security     BearerAuth
// @Produce      json
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Items per page (default 20)"
// @Param        status   query     string  false  "pending, approved or rejected"
// @Param        orderId  query     string  false  "Order ID"
// @Success      200      {object}  response.Response
// @Router       /returns [get]
func (h *ReturnHandler) GetReturns(c *gin.Context) {
	p, page := pageOf(c)
	returns, total, err := h.returnService.ListReturns(c.Request.Context(), service.ReturnQuery{
		Status:  c.Query("status"),
		OrderID: c.Query("orderId"),
		Page:    page,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List("Returns fetched successfully", "returns", returns, p.Meta(total)))
}

// GetReturn returns one return
// @Summary      Get return
// @Tags         returns
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Return ID"
// @Success      200  {object}  response.Response{return=service.ReturnResponse}
// @Failure      404  {object}  response.Response
// @Router       /returns/{id} [get]
func (h *ReturnHandler) GetReturn(c *gin.Context) {
	ret, err := h.returnService.GetReturn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Return fetched successfully", "return", ret))
}

// CreateReturn files a return against an order
// @Summary      Create return
// @Description  The refund uses the matching order item's price, or 450 per meter when no item matches
// @Tags         returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ReturnRequest  true  "Return"
// @Success      201      {object}  response.Response{return=service.ReturnResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response  "Order is cancelled"
// @Router       /returns [post]
func (h *ReturnHandler) CreateReturn(c *gin.Context) {
	var req service.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Return created successfully", "return", ret))
}

// UpdateReturn changes the reason or approves/rejects the return
// @Summary      Update return
// @Description  Approval puts the quantity back into stock. A decision cannot be changed.
// @Tags         returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Return ID"
// @Param        payload  body      service.ReturnUpdateRequest  true  "Changes"
// @Success      200      {object}  response.Response{return=service.ReturnResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response  "Already decided"
// @Router       /returns/{id} [put]
func (h *ReturnHandler) UpdateReturn(c *gin.Context) {
	var req service.ReturnUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ret, err := h.returnService.UpdateReturn(c.Request.Context(), middleware.Actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Return updated successfully", "return", ret))
}

// DeleteReturn removes a return, reversing an approval's stock credit
// @Summary      Delete return
// @Tags         returns
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Return ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response  "Credited stock already used"
// @Router       /returns/{id} [delete]
func (h *ReturnHandler) DeleteReturn(c *gin.Context) {
	if err := h.returnService.DeleteReturn(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Return deleted successfully", "", nil))
}

package handler

import (
	"net/http"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/middleware"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockService service.StockService
}

func NewStockHandler(stockService service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	stock := router.Group("/stock")
	{
		stock.GET("", h.GetStocks)
		stock.POST("", h.CreateStock)
		stock.GET("/:id", h.GetStock)
		stock.PUT("/:id", h.UpdateStock)
		stock.DELETE("/:id", h.DeleteStock)
	}
}

// GetStocks lists gray, factory and design stock entries
// @Summary      List stock
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Items per page (default 20)"
// @Param        stockType  query     string  false  "Gray Stock, Factory Stock or Design Stock"
// @Param        status     query     string  false  "available, low, out or processing"
// @Success      200        {object}  response.Response
// @Router       /stock [get]
func (h *StockHandler) GetStocks(c *gin.Context) {
	p, page := pageOf(c)
	stocks, total, err := h.stockService.ListStock(c.Request.Context(), service.StockQuery{
		StockType: c.Query("stockType"),
		Status:    c.Query("status"),
		Page:      page,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List("Stocks fetched successfully", "stocks", stocks, p.Meta(total)))
}

// GetStock returns one stock entry
// @Summary      Get stock
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Stock ID"
// @Success      200  {object}  response.Response{stock=service.StockResponse}
// @Failure      404  {object}  response.Response
// @Router       /stock/{id} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	st, err := h.stockService.GetStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Stock fetched successfully", "stock", st))
}

// CreateStock records a stock intake
// @Summary      Create stock
// @Description  stockDetails must carry exactly the member matching stockType
// @Tags         stock
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.StockRequest  true  "Stock"
// @Success      201      {object}  response.Response{stock=service.StockResponse}
// @Failure      400      {object}  response.Response
// @Router       /stock [post]
func (h *StockHandler) CreateStock(c *gin.Context) {
	var req service.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	st, err := h.stockService.CreateStock(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Stock created successfully", "stock", st))
}

// UpdateStock replaces a stock entry
// @Summary      Update stock
// @Tags         stock
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Stock ID"
// @Param        payload  body      service.StockRequest  true  "Stock"
// @Success      200      {object}  response.Response{stock=service.StockResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /stock/{id} [put]
func (h *StockHandler) UpdateStock(c *gin.Context) {
	var req service.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	st, err := h.stockService.UpdateStock(c.Request.Context(), middleware.Actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Stock updated successfully", "stock", st))
}

// DeleteStock soft deletes a stock entry
// @Summary      Delete stock
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Stock ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /stock/{id} [delete]
func (h *StockHandler) DeleteStock(c *gin.Context) {
	if err := h.stockService.DeleteStock(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Stock deleted successfully", "", nil))
}

package handler

import (
	"net/http"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/middleware"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type BusinessHandler struct {
	businessService service.BusinessService
}

func NewBusinessHandler(businessService service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

func (h *BusinessHandler) RegisterRoutes(router *gin.RouterGroup) {
	business := router.Group("/business")
	{
		business.GET("", h.GetBusiness)
		business.POST("", h.CreateBusiness)
		business.PUT("", h.UpdateBusiness)
	}
}

// GetBusiness returns the business profile
// @Summary      Get business profile
// @Tags         business
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{business=model.Business}
// @Failure      404  {object}  response.Response
// @Router       /business [get]
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	business, err := h.businessService.GetBusiness(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Business profile fetched successfully", "business", business))
}

// CreateBusiness stores the business profile
// @Summary      Create business profile
// @Tags         business
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BusinessRequest  true  "Business profile"
// @Success      201      {object}  response.Response{business=model.Business}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response  "Profile already exists"
// @Router       /business [post]
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	var req service.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Business profile created successfully", "business", business))
}

// UpdateBusiness replaces the business profile
// @Summary      Update business profile
// @Tags         business
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BusinessRequest  true  "Business profile"
// @Success      200      {object}  response.Response{business=model.Business}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /business [put]
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	var req service.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Business profile updated successfully", "business", business))
}

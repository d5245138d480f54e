package handler

import (
	"net/http"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/middleware"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/whatsapp-notifications")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", h.UpdateSettings)
		settings.POST("/test", h.SendTest)
	}

	messages := router.Group("/whatsapp-messages")
	{
		messages.GET("", h.GetMessages)
		messages.GET("/:id", h.GetMessage)
	}
}

// GetSettings returns the WhatsApp notification settings
// @Summary      Get WhatsApp settings
// @Description  Returns the defaults (disabled, every category on) when nothing was saved
// @Tags         whatsapp
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{settings=model.WhatsappNotification}
// @Router       /whatsapp-notifications [get]
func (h *NotificationHandler) GetSettings(c *gin.Context) {
	settings, err := h.notificationService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Notification settings fetched successfully", "settings", settings))
}

// UpdateSettings saves the settings and applies them to later notifications
// @Summary      Update WhatsApp settings
// @Tags         whatsapp
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.NotificationSettingsRequest  true  "Settings"
// @Success      200      {object}  response.Response{settings=model.WhatsappNotification}
// @Failure      400      {object}  response.Response
// @Router       /whatsapp-notifications [put]
func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	var req service.NotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := h.notificationService.UpdateSettings(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Notification settings updated successfully", "settings", settings))
}

// SendTest sends the test message and returns the delivery records
// @Summary      Send WhatsApp test message
// @Description  Uses the given recipients, or the configured ones when the body is empty
// @Tags         whatsapp
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.TestMessageRequest  false  "Recipients"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response  "No recipients"
// @Router       /whatsapp-notifications/test [post]
func (h *NotificationHandler) SendTest(c *gin.Context) {
	var req service.TestMessageRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	msgs, err := h.notificationService.SendTest(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Test message processed", "messages", msgs))
}

// GetMessages lists the WhatsApp delivery log
// @Summary      List WhatsApp messages
// @Tags         whatsapp
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Param        status  query     string  false  "Delivered or Not Delivered"
// @Param        event   query     string  false  "Event name, e.g. order.created"
// @Success      200     {object}  response.Response
// @Router       /whatsapp-messages [get]
func (h *NotificationHandler) GetMessages(c *gin.Context) {
	p, page := pageOf(c)
	msgs, total, err := h.notificationService.ListMessages(c.Request.Context(), service.MessageQuery{
		Status: c.Query("status"),
		Event:  c.Query("event"),
		Page:   page,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List("Messages fetched successfully", "messages", msgs, p.Meta(total)))
}

// GetMessage returns one delivery record
// @Summary      Get WhatsApp message
// @Tags         whatsapp
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Message ID"
// @Success      200  {object}  response.Response{whatsappMessage=model.WhatsappMessage}
// @Failure      404  {object}  response.Response
// @Router       /whatsapp-messages/{id} [get]
func (h *NotificationHandler) GetMessage(c *gin.Context) {
	msg, err := h.notificationService.GetMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Message fetched successfully", "whatsappMessage", msg))
}

package handler

import (
	"net/http"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	agentService service.AgentService
}

func NewAgentHandler(agentService service.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

func (h *AgentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/agent/chat", h.Chat)
}

// Chat answers a question about stock, orders, returns, customers or revenue
// @Summary      Ask the assistant
// @Tags         agent
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.AgentRequest  true  "Question"
// @Success      200      {object}  response.Response{agent=service.AgentReply}
// @Failure      400      {object}  response.Response
// @Router       /agent/chat [post]
func (h *AgentHandler) Chat(c *gin.Context) {
	var req service.AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reply, err := h.agentService.Chat(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Agent replied", "agent", reply))
}

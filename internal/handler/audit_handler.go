package handler

import (
	"net/http"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/middleware"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/audit-logs")
	group.Use(middleware.RequireRole(middleware.RoleAdmin))
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs retrieves paginated audit records, newest first
// @Summary      Get audit logs
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Items per page (default 20)"
// @Param        action    query     string  false  "Action, e.g. CREATE_ORDER"
// @Param        entityId  query     string  false  "Entity ID"
// @Success      200       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Router       /audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	p, page := pageOf(c)
	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), service.AuditQuery{
		Action:   c.Query("action"),
		EntityID: c.Query("entityId"),
		Page:     page,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List("Audit logs fetched successfully", "logs", logs, p.Meta(total)))
}

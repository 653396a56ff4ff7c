package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
)

// AuditHandler exposes the append-only audit trail
type AuditHandler struct {
	auditService *service.AuditService
	loc          *time.Location
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService, loc *time.Location) *AuditHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AuditHandler{auditService: auditService, loc: loc}
}

func (h *AuditHandler) List(c *gin.Context) {
	userID, ok := queryUUID(c, "user_id")
	if !ok {
		return
	}
	action, ok := queryEnum(c, "action", enum.ParseAuditAction)
	if !ok {
		return
	}
	from, to, ok := queryDateRange(c, h.loc)
	if !ok {
		return
	}

	result, err := h.auditService.List(c.Request.Context(), repository.AuditLogFilter{
		Pagination: paginationFrom(c),
		UserID:     userID,
		Action:     action,
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		From:       from,
		To:         to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Audit logs retrieved successfully", result)
}

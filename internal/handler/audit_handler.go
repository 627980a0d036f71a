package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusops/tpo-api/internal/models"
	"github.com/campusops/tpo-api/internal/service"
	"github.com/campusops/tpo-api/pkg/response"
)

// AuditHandler serves the admin audit trail.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler creates a new handler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// List godoc
// @Summary List audit events
// @Description Recent audit events, newest first. A storage failure yields an empty list, not an error.
// @Tags Audit
// @Produce json
// @Param target_table query string false "Target table filter"
// @Param target_id query string false "Target id filter"
// @Param target_role query string false "Target role filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	filter := models.AuditFilter{
		TargetTable: c.Query("target_table"),
		TargetID:    c.Query("target_id"),
		TargetRole:  c.Query("target_role"),
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	events := h.service.List(c.Request.Context(), filter)
	response.JSON(c, http.StatusOK, events, nil)
}

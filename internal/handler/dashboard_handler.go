package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusops/tpo-api/internal/service"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
	"github.com/campusops/tpo-api/pkg/response"
)

// DashboardHandler serves the company dashboard.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Company godoc
// @Summary Company dashboard
// @Description Profile, company record and posting counters for the calling company
// @Tags Companies
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /companies/dashboard [get]
func (h *DashboardHandler) Company(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dashboard, err := h.service.Company(c.Request.Context(), claims.ProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dashboard, nil)
}

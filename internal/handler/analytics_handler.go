package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusops/tpo-api/internal/middleware"
	"github.com/campusops/tpo-api/internal/service"
	"github.com/campusops/tpo-api/pkg/response"
)

// AnalyticsHandler serves the admin analytics endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	exports   *service.ExportService
	metrics   *service.MetricsService
}

// NewAnalyticsHandler creates a new handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, exports *service.ExportService, metrics *service.MetricsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, exports: exports, metrics: metrics}
}

// Counts godoc
// @Summary Placement counters
// @Description Portal-wide totals for the admin dashboard
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /analytics [get]
func (h *AnalyticsHandler) Counts(c *gin.Context) {
	counts, cacheHit, err := h.analytics.Counts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, counts, nil, middleware.ExtractMeta(c))
}

// PlacementExport godoc
// @Summary Placement report download
// @Description Per-company placement summary as CSV or PDF
// @Tags Analytics
// @Produce octet-stream
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /analytics/placements/export [get]
func (h *AnalyticsHandler) PlacementExport(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.PlacementReport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// System godoc
// @Summary Runtime metrics snapshot
// @Description Aggregated runtime counters for the admin panel
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/system [get]
func (h *AnalyticsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}

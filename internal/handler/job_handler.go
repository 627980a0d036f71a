package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusops/tpo-api/internal/service"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
	"github.com/campusops/tpo-api/pkg/response"
)

// JobHandler wires job posting endpoints.
type JobHandler struct {
	service *service.JobService
}

// NewJobHandler creates a new handler.
func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{service: svc}
}

// Create godoc
// @Summary Post a job
// @Description Create a job opening under the calling company
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body service.CreateJobRequest true "Job payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /companies/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req service.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid job payload"))
		return
	}

	job, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, job)
}

// ListMine godoc
// @Summary List own postings
// @Description List jobs posted by the calling company
// @Tags Jobs
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /companies/jobs [get]
func (h *JobHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	jobs, err := h.service.ListMine(c.Request.Context(), claims.ProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, jobs, nil)
}

// ListOpen godoc
// @Summary List open jobs
// @Description Active postings with a future deadline
// @Tags Jobs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /jobs [get]
func (h *JobHandler) ListOpen(c *gin.Context) {
	jobs, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, jobs, nil)
}

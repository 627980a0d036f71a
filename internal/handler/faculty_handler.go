package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusops/tpo-api/internal/models"
	"github.com/campusops/tpo-api/internal/service"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
	"github.com/campusops/tpo-api/pkg/response"
)

// FacultyHandler wires the faculty-facing student listing and approvals.
type FacultyHandler struct {
	faculty   *service.FacultyService
	approvals *service.ApprovalService
}

// NewFacultyHandler creates a new handler.
func NewFacultyHandler(faculty *service.FacultyService, approvals *service.ApprovalService) *FacultyHandler {
	return &FacultyHandler{faculty: faculty, approvals: approvals}
}

// Students godoc
// @Summary List assigned students
// @Description Students within the calling faculty's roll number ranges
// @Tags Faculty
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faculty/students [get]
func (h *FacultyHandler) Students(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	students, err := h.faculty.StudentsForProfile(c.Request.Context(), claims.ProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, students, nil)
}

// Approve godoc
// @Summary Approve or reject a student
// @Description Record an approval decision for a student in scope
// @Tags Faculty
// @Accept json
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faculty/approvals/{id} [put]
func (h *FacultyHandler) Approve(c *gin.Context) {
	var payload struct {
		Status models.ApprovalStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status required"))
		return
	}

	student, err := h.approvals.Decide(c.Request.Context(), c.Param("id"), payload.Status, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, student, nil)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusops/tpo-api/internal/models"
	"github.com/campusops/tpo-api/internal/service"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
	"github.com/campusops/tpo-api/pkg/response"
)

// StudentHandler wires the student-facing application and offer endpoints.
type StudentHandler struct {
	applications *service.ApplicationService
	offers       *service.OfferService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(applications *service.ApplicationService, offers *service.OfferService) *StudentHandler {
	return &StudentHandler{applications: applications, offers: offers}
}

// Apply godoc
// @Summary Apply to a job
// @Description Create an application for the calling student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.ApplyRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/applications [post]
func (h *StudentHandler) Apply(c *gin.Context) {
	var req service.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}

	app, err := h.applications.Apply(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, app)
}

// ListApplications godoc
// @Summary List own applications
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/applications [get]
func (h *StudentHandler) ListApplications(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	apps, err := h.applications.ListMine(c.Request.Context(), claims.ProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, apps, nil)
}

// ApplicationDetail godoc
// @Summary Application detail
// @Description Application joined with applicant, job and company
// @Tags Students
// @Produce json
// @Param id path string true "Application id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/applications/{id} [get]
func (h *StudentHandler) ApplicationDetail(c *gin.Context) {
	detail, err := h.applications.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, detail, nil)
}

// RespondOffer godoc
// @Summary Respond to an offer
// @Description Accept or decline an offer letter
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Offer id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/offers/{id} [patch]
func (h *StudentHandler) RespondOffer(c *gin.Context) {
	var payload struct {
		OfferStatus models.OfferStatus `json:"offer_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "offer_status required"))
		return
	}

	offer, err := h.offers.Respond(c.Request.Context(), c.Param("id"), payload.OfferStatus, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, offer, nil)
}

// OfferLetter godoc
// @Summary Download offer letter
// @Description Render the offer letter PDF for an offer the caller owns
// @Tags Students
// @Produce application/pdf
// @Param id path string true "Offer id"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /students/offers/{id}/letter [get]
func (h *StudentHandler) OfferLetter(c *gin.Context) {
	pdf, detail, err := h.offers.Letter(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="offer-`+detail.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

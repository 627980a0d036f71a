package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusops/tpo-api/internal/service"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
	"github.com/campusops/tpo-api/pkg/response"
)

// NotificationHandler wires the notification endpoints.
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new handler.
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// List godoc
// @Summary List notifications
// @Description Notifications for the calling profile, optionally filtered by read state
// @Tags Notifications
// @Produce json
// @Param is_read query bool false "Filter by read state"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var isRead *bool
	if raw := c.Query("is_read"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "is_read must be a boolean"))
			return
		}
		isRead = &parsed
	}

	notifications, err := h.service.List(c.Request.Context(), claims.ProfileID, isRead)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, notifications, nil)
}

// Update godoc
// @Summary Update a notification
// @Description Set the read flag on a notification the caller owns. Unknown fields are rejected.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification id"
// @Param payload body service.UpdateNotificationRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id} [put]
func (h *NotificationHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.UpdateNotificationRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid notification payload"))
		return
	}

	notification, err := h.service.Update(c.Request.Context(), claims.ProfileID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, notification, nil)
}

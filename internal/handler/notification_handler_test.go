package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/middleware"
	"github.com/campusops/tpo-api/internal/models"
	"github.com/campusops/tpo-api/internal/service"
)

type notificationRepoMock struct {
	list       []models.Notification
	lastIsRead *bool
	updated    *models.Notification
	updateErr  error
}

func (m *notificationRepoMock) Create(ctx context.Context, n *models.Notification) error {
	return nil
}

func (m *notificationRepoMock) ListByProfile(ctx context.Context, profileID string, isRead *bool) ([]models.Notification, error) {
	m.lastIsRead = isRead
	return m.list, nil
}

func (m *notificationRepoMock) SetRead(ctx context.Context, id, profileID string, isRead bool) (*models.Notification, error) {
	return m.updated, m.updateErr
}

func newNotificationTestHandler(repo *notificationRepoMock) *NotificationHandler {
	svc := service.NewNotificationService(repo, nil, nil, service.NotificationQueueConfig{})
	return NewNotificationHandler(svc)
}

func TestNotificationHandlerListParsesReadFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &notificationRepoMock{list: []models.Notification{{ID: "n1", ProfileID: "sp1"}}}
	handler := newNotificationTestHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/notifications?is_read=false", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{ProfileID: "sp1", Role: models.RoleStudent})

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.lastIsRead)
	assert.False(t, *repo.lastIsRead)
}

func TestNotificationHandlerListRejectsBadFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newNotificationTestHandler(&notificationRepoMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/notifications?is_read=maybe", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{ProfileID: "sp1", Role: models.RoleStudent})

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandlerUpdateRejectsUnknownFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newNotificationTestHandler(&notificationRepoMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"is_read":true,"title":"rewritten"}`)
	req, _ := http.NewRequest(http.MethodPut, "/notifications/n1", body)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "n1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{ProfileID: "sp1", Role: models.RoleStudent})

	handler.Update(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandlerUpdateMarksRead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &notificationRepoMock{updated: &models.Notification{ID: "n1", ProfileID: "sp1", IsRead: true}}
	handler := newNotificationTestHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/notifications/n1", bytes.NewBufferString(`{"is_read":true}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "n1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{ProfileID: "sp1", Role: models.RoleStudent})

	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_read":true`)
}

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
)

type fakeNotificationRepo struct {
	createdCh chan *models.Notification

	list    []models.Notification
	listErr error

	updated   *models.Notification
	updateErr error
	setReadTo *bool
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if f.createdCh != nil {
		f.createdCh <- n
	}
	return nil
}

func (f *fakeNotificationRepo) ListByProfile(ctx context.Context, profileID string, isRead *bool) ([]models.Notification, error) {
	return f.list, f.listErr
}

func (f *fakeNotificationRepo) SetRead(ctx context.Context, id, profileID string, isRead bool) (*models.Notification, error) {
	f.setReadTo = &isRead
	return f.updated, f.updateErr
}

func TestNotificationServiceDispatchWritesThroughQueue(t *testing.T) {
	repo := &fakeNotificationRepo{createdCh: make(chan *models.Notification, 1)}
	svc := NewNotificationService(repo, nil, nil, NotificationQueueConfig{Workers: 1, BufferSize: 4})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	require.NoError(t, svc.Dispatch("sp1", "Placement status updated", "Your profile was approved."))

	select {
	case n := <-repo.createdCh:
		assert.Equal(t, "sp1", n.ProfileID)
		assert.Equal(t, "Placement status updated", n.Title)
		assert.Equal(t, "Your profile was approved.", n.Body)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not persisted")
	}
}

func TestNotificationServiceDispatchBeforeStart(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, nil, nil, NotificationQueueConfig{})

	err := svc.Dispatch("sp1", "title", "body")
	assert.Error(t, err)
}

func TestNotificationServiceListNeverNil(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, nil, nil, NotificationQueueConfig{})

	notifications, err := svc.List(context.Background(), "sp1", nil)
	require.NoError(t, err)
	assert.NotNil(t, notifications)
	assert.Empty(t, notifications)
}

func TestNotificationServiceUpdateRequiresReadFlag(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, nil, nil, NotificationQueueConfig{})

	_, err := svc.Update(context.Background(), "sp1", "n1", UpdateNotificationRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.setReadTo)
}

func TestNotificationServiceUpdateNotOwnedReportsNotFound(t *testing.T) {
	repo := &fakeNotificationRepo{updateErr: sql.ErrNoRows}
	svc := NewNotificationService(repo, nil, nil, NotificationQueueConfig{})

	read := true
	_, err := svc.Update(context.Background(), "sp1", "n1", UpdateNotificationRequest{IsRead: &read})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceUpdateMarksRead(t *testing.T) {
	repo := &fakeNotificationRepo{updated: &models.Notification{ID: "n1", ProfileID: "sp1", IsRead: true}}
	svc := NewNotificationService(repo, nil, nil, NotificationQueueConfig{})

	read := true
	notification, err := svc.Update(context.Background(), "sp1", "n1", UpdateNotificationRequest{IsRead: &read})
	require.NoError(t, err)
	assert.True(t, notification.IsRead)
	require.NotNil(t, repo.setReadTo)
	assert.True(t, *repo.setReadTo)
}

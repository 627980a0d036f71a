package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
	"github.com/campusops/tpo-api/pkg/jobs"
)

type notificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByProfile(ctx context.Context, profileID string, isRead *bool) ([]models.Notification, error)
	SetRead(ctx context.Context, id, profileID string, isRead bool) (*models.Notification, error)
}

// UpdateNotificationRequest is the explicit schema of updatable notification
// fields. Only the read flag may be changed through the API.
type UpdateNotificationRequest struct {
	IsRead *bool `json:"is_read" validate:"required"`
}

// NotificationQueueConfig sizes the background notification dispatcher.
type NotificationQueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
}

type notificationPayload struct {
	ProfileID string
	Title     string
	Body      string
}

// NotificationService serves owner-scoped notification reads and updates and
// dispatches new notifications through a background queue so mutations that
// trigger fan-out never wait on it.
type NotificationService struct {
	repo      notificationRepository
	validator *validator.Validate
	queue     *jobs.Queue
	logger    *zap.Logger
}

// NewNotificationService constructs the notification service and its queue.
func NewNotificationService(repo notificationRepository, validate *validator.Validate, logger *zap.Logger, cfg NotificationQueueConfig) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{repo: repo, validator: validate, logger: logger}
	s.queue = jobs.NewQueue("notifications", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the queue workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Dispatch enqueues a notification write for the given profile.
func (s *NotificationService) Dispatch(profileID, title, body string) error {
	return s.queue.Enqueue(jobs.Job{
		ID:   uuid.NewString(),
		Type: "notification",
		Payload: notificationPayload{
			ProfileID: profileID,
			Title:     title,
			Body:      body,
		},
	})
}

func (s *NotificationService) process(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(notificationPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	return s.repo.Create(ctx, &models.Notification{
		ProfileID: payload.ProfileID,
		Title:     payload.Title,
		Body:      payload.Body,
	})
}

// List returns the caller's notifications, optionally filtered by read state.
func (s *NotificationService) List(ctx context.Context, profileID string, isRead *bool) ([]models.Notification, error) {
	notifications, err := s.repo.ListByProfile(ctx, profileID, isRead)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// Update applies the permitted field changes to a notification the caller
// owns. Ownership is enforced by the store predicate, so an update against
// another user's notification reports NotFound instead of touching the row.
func (s *NotificationService) Update(ctx context.Context, profileID, id string, req UpdateNotificationRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}
	notification, err := s.repo.SetRead(ctx, id, profileID, *req.IsRead)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update notification")
	}
	return notification, nil
}

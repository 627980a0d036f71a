package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusops/tpo-api/internal/models"
)

// NotificationRepository manages persistence for portal notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification for a profile.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO notifications (id, profile_id, title, body, is_read, created_at)
        VALUES (:id, :profile_id, :title, :body, :is_read, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListByProfile returns a profile's notifications, optionally filtered by
// read state, newest first.
func (r *NotificationRepository) ListByProfile(ctx context.Context, profileID string, isRead *bool) ([]models.Notification, error) {
	query := `SELECT id, profile_id, title, body, is_read, created_at FROM notifications WHERE profile_id = $1`
	args := []interface{}{profileID}
	if isRead != nil {
		query += fmt.Sprintf(" AND is_read = $%d", len(args)+1)
		args = append(args, *isRead)
	}
	query += " ORDER BY created_at DESC"

	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// SetRead flips the read flag on a notification. Ownership is enforced in the
// predicate: a mismatched profile matches zero rows and yields sql.ErrNoRows.
func (r *NotificationRepository) SetRead(ctx context.Context, id, profileID string, isRead bool) (*models.Notification, error) {
	const query = `UPDATE notifications SET is_read = $3
        WHERE id = $1 AND profile_id = $2
        RETURNING id, profile_id, title, body, is_read, created_at`
	var n models.Notification
	if err := r.db.GetContext(ctx, &n, query, id, profileID, isRead); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update notification: %w", err)
	}
	return &n, nil
}

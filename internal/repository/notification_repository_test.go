package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
)

func TestNotificationRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	n := &models.Notification{ProfileID: "p1", Title: "Placement status updated", Body: "Approved"}
	require.NoError(t, repo.Create(context.Background(), n))
	assert.NotEmpty(t, n.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryListByProfileFiltersRead(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "profile_id", "title", "body", "is_read", "created_at"}).
		AddRow("n1", "p1", "Title", "Body", false, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE profile_id").
		WithArgs("p1", false).
		WillReturnRows(rows)

	isRead := false
	notifications, err := repo.ListByProfile(context.Background(), "p1", &isRead)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositorySetReadOwnerMismatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectQuery("UPDATE notifications SET is_read").
		WithArgs("n1", "intruder", true).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SetRead(context.Background(), "n1", "intruder", true)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositorySetRead(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "profile_id", "title", "body", "is_read", "created_at"}).
		AddRow("n1", "p1", "Title", "Body", true, time.Now())
	mock.ExpectQuery("UPDATE notifications SET is_read").
		WithArgs("n1", "p1", true).
		WillReturnRows(rows)

	n, err := repo.SetRead(context.Background(), "n1", "p1", true)
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

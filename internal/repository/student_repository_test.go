package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "profile_id", "roll_number", "branch", "status", "is_approved", "approved_by", "approved_at", "created_at", "updated_at"})
	for i, id := range ids {
		rows.AddRow(id, "profile-"+id, "CS"+string(rune('0'+i)), "CSE", "Pending", false, nil, nil, time.Now(), time.Now())
	}
	return rows
}

func TestStudentRepositoryListByRollRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM students WHERE roll_number BETWEEN").
		WithArgs("CS001", "CS050").
		WillReturnRows(studentRows("a", "b"))

	students, err := repo.ListByRollRange(context.Background(), "CS001", "CS050")
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateApprovalDerivesFlag(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	decidedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "profile_id", "roll_number", "branch", "status", "is_approved", "approved_by", "approved_at", "created_at", "updated_at"}).
		AddRow("s1", "p1", "CS001", "CSE", "Approved", true, "faculty-1", decidedAt, time.Now(), decidedAt)
	mock.ExpectQuery("UPDATE students").
		WithArgs("s1", models.ApprovalApproved, true, "faculty-1", decidedAt).
		WillReturnRows(rows)

	student, err := repo.UpdateApproval(context.Background(), "s1", models.ApprovalApproved, "faculty-1", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, student.Status)
	assert.True(t, student.IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateApprovalRejectedClearsFlag(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	decidedAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "profile_id", "roll_number", "branch", "status", "is_approved", "approved_by", "approved_at", "created_at", "updated_at"}).
		AddRow("s1", "p1", "CS001", "CSE", "Rejected", false, "faculty-1", decidedAt, time.Now(), decidedAt)
	mock.ExpectQuery("UPDATE students").
		WithArgs("s1", models.ApprovalRejected, false, "faculty-1", decidedAt).
		WillReturnRows(rows)

	student, err := repo.UpdateApproval(context.Background(), "s1", models.ApprovalRejected, "faculty-1", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, student.Status)
	assert.False(t, student.IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateApprovalMissingStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("UPDATE students").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateApproval(context.Background(), "missing", models.ApprovalApproved, "faculty-1", time.Now())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

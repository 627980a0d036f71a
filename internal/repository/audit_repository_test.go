package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
)

func TestAuditRepositoryInsertAssignsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_events").
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.AuditEvent{Action: models.AuditActionLogin, TargetTable: "profiles"}
	require.NoError(t, repo.Insert(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func auditRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "actor_id", "actor_role", "action", "target_table", "target_id", "target_role", "details", "created_at", "actor_name", "actor_email"})
}

func TestAuditRepositoryListDefaultsLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	actorID := "p1"
	name := "Ravi Kumar"
	email := "ravi@example.com"
	rows := auditRows().
		AddRow("e1", actorID, "FACULTY", "student_approval", "students", "s1", "STUDENT", []byte(`{"decision":"Approved"}`), time.Now(), name, email)
	mock.ExpectQuery("ORDER BY e.created_at DESC LIMIT 50 OFFSET 0").
		WillReturnRows(rows)

	events, err := repo.List(context.Background(), models.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Actor.FullName)
	assert.Equal(t, name, *events[0].Actor.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListCapsLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectQuery("LIMIT 50 OFFSET 10").
		WillReturnRows(auditRows())

	events, err := repo.List(context.Background(), models.AuditFilter{Limit: 5000, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectQuery("e.target_table = \\$1 AND e.target_id = \\$2").
		WithArgs("students", "s1").
		WillReturnRows(auditRows())

	_, err := repo.List(context.Background(), models.AuditFilter{TargetTable: "students", TargetID: "s1"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

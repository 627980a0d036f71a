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

func TestOfferRepositoryRespond(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	respondedAt := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "application_id", "student_id", "position", "ctc", "offer_status", "student_response_at", "issued_at"}).
		AddRow("o1", "a1", "s1", "SDE", "12 LPA", "Accepted", respondedAt, time.Now())
	mock.ExpectQuery("UPDATE offer_letters o").
		WithArgs("o1", "p1", models.OfferAccepted, respondedAt).
		WillReturnRows(rows)

	offer, err := repo.Respond(context.Background(), "o1", "p1", models.OfferAccepted, respondedAt)
	require.NoError(t, err)
	assert.Equal(t, models.OfferAccepted, offer.OfferStatus)
	require.NotNil(t, offer.StudentResponseAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryRespondNotOwner(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	mock.ExpectQuery("UPDATE offer_letters o").
		WithArgs("o1", "someone-else", models.OfferDeclined, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Respond(context.Background(), "o1", "someone-else", models.OfferDeclined, time.Now())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryFindDetailOwned(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	rows := sqlmock.NewRows([]string{"id", "application_id", "student_id", "position", "ctc", "offer_status", "student_response_at", "issued_at", "student_name", "roll_number", "company_name"}).
		AddRow("o1", "a1", "s1", "SDE", "12 LPA", "Pending", nil, time.Now(), "Asha Rao", "CS001", "Acme Corp")
	mock.ExpectQuery("SELECT o.id, o.application_id").
		WithArgs("o1", "p1").
		WillReturnRows(rows)

	detail, err := repo.FindDetailOwned(context.Background(), "o1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", detail.StudentName)
	assert.Equal(t, "Acme Corp", detail.CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

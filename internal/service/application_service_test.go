package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
)

type fakeApplicationRepo struct {
	created   *models.Application
	createErr error
	exists    bool
	existsErr error
	detail    *models.ApplicationDetail
	detailErr error
	list      []models.ApplicationDetail
	listErr   error
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	app.ID = "app-1"
	f.created = app
	return nil
}

func (f *fakeApplicationRepo) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeApplicationRepo) FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]models.ApplicationDetail, error) {
	return f.list, f.listErr
}

type fakeApplicantStudents struct {
	student *models.Student
	err     error
}

func (f *fakeApplicantStudents) FindByProfileID(ctx context.Context, profileID string) (*models.Student, error) {
	return f.student, f.err
}

const applyJobID = "0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0"

func TestApplicationServiceApplyRejectsMalformedJobID(t *testing.T) {
	repo := &fakeApplicationRepo{}
	svc := NewApplicationService(repo, &fakeApplicantStudents{}, nil, nil)

	_, err := svc.Apply(context.Background(), ApplyRequest{JobID: "not-a-uuid"}, studentClaims("sp1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestApplicationServiceApplyRequiresApproval(t *testing.T) {
	students := &fakeApplicantStudents{student: &models.Student{ID: "s1", IsApproved: false}}
	svc := NewApplicationService(&fakeApplicationRepo{}, students, nil, nil)

	_, err := svc.Apply(context.Background(), ApplyRequest{JobID: applyJobID}, studentClaims("sp1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestApplicationServiceApplyDuplicate(t *testing.T) {
	students := &fakeApplicantStudents{student: &models.Student{ID: "s1", IsApproved: true}}
	svc := NewApplicationService(&fakeApplicationRepo{exists: true}, students, nil, nil)

	_, err := svc.Apply(context.Background(), ApplyRequest{JobID: applyJobID}, studentClaims("sp1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestApplicationServiceApplySuccess(t *testing.T) {
	repo := &fakeApplicationRepo{}
	students := &fakeApplicantStudents{student: &models.Student{ID: "s1", IsApproved: true}}
	svc := NewApplicationService(repo, students, nil, nil)

	app, err := svc.Apply(context.Background(), ApplyRequest{JobID: applyJobID}, studentClaims("sp1"))
	require.NoError(t, err)
	assert.Equal(t, "app-1", app.ID)
	assert.Equal(t, applyJobID, app.JobID)
	assert.Equal(t, "sp1", app.ApplicantID)
	assert.Equal(t, models.ApplicationApplied, app.Status)
}

func TestApplicationServiceApplyMissingStudentRecord(t *testing.T) {
	svc := NewApplicationService(&fakeApplicationRepo{}, &fakeApplicantStudents{err: sql.ErrNoRows}, nil, nil)

	_, err := svc.Apply(context.Background(), ApplyRequest{JobID: applyJobID}, studentClaims("sp1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicationServiceDetailNotFound(t *testing.T) {
	svc := NewApplicationService(&fakeApplicationRepo{detailErr: sql.ErrNoRows}, &fakeApplicantStudents{}, nil, nil)

	_, err := svc.Detail(context.Background(), "app-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicationServiceListMineNeverNil(t *testing.T) {
	svc := NewApplicationService(&fakeApplicationRepo{}, &fakeApplicantStudents{}, nil, nil)

	apps, err := svc.ListMine(context.Background(), "sp1")
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
)

type fakeDashboardProfiles struct {
	profile *models.Profile
	err     error
}

func (f *fakeDashboardProfiles) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	return f.profile, f.err
}

type fakeDashboardCompanies struct {
	company *models.Company
	err     error
}

func (f *fakeDashboardCompanies) FindByProfileID(ctx context.Context, profileID string) (*models.Company, error) {
	return f.company, f.err
}

type fakeJobCounter struct {
	total  int
	active int
	err    error
}

func (f *fakeJobCounter) CountByCompany(ctx context.Context, companyID string) (int, int, error) {
	return f.total, f.active, f.err
}

type fakeApplicationCounter struct {
	count int
	err   error
}

func (f *fakeApplicationCounter) CountByCompany(ctx context.Context, companyID string) (int, error) {
	return f.count, f.err
}

func TestDashboardServiceCompanySuccess(t *testing.T) {
	profiles := &fakeDashboardProfiles{profile: &models.Profile{ID: "p1", Email: "hr@acme.test", FullName: "Acme HR", Role: models.RoleCompany}}
	companies := &fakeDashboardCompanies{company: &models.Company{ID: "c1", Name: "Acme"}}
	svc := NewDashboardService(profiles, companies, &fakeJobCounter{total: 7, active: 3}, &fakeApplicationCounter{count: 42}, nil)

	dash, err := svc.Company(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", dash.Company.Name)
	assert.Equal(t, "p1", dash.Profile.ID)
	assert.Equal(t, 7, dash.Stats.TotalJobs)
	assert.Equal(t, 3, dash.Stats.ActiveJobs)
	assert.Equal(t, 42, dash.Stats.TotalApplications)
}

func TestDashboardServiceCompanyMissingCompany(t *testing.T) {
	profiles := &fakeDashboardProfiles{profile: &models.Profile{ID: "p1", Role: models.RoleCompany}}
	companies := &fakeDashboardCompanies{err: sql.ErrNoRows}
	svc := NewDashboardService(profiles, companies, &fakeJobCounter{}, &fakeApplicationCounter{}, nil)

	_, err := svc.Company(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDashboardServiceCompanyMissingProfile(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardProfiles{err: sql.ErrNoRows}, &fakeDashboardCompanies{}, &fakeJobCounter{}, &fakeApplicationCounter{}, nil)

	_, err := svc.Company(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDashboardServiceCountersDegradeToZero(t *testing.T) {
	profiles := &fakeDashboardProfiles{profile: &models.Profile{ID: "p1", Role: models.RoleCompany}}
	companies := &fakeDashboardCompanies{company: &models.Company{ID: "c1", Name: "Acme"}}
	svc := NewDashboardService(profiles, companies, &fakeJobCounter{err: errors.New("jobs down")}, &fakeApplicationCounter{count: 9}, nil)

	dash, err := svc.Company(context.Background(), "p1")
	require.NoError(t, err)
	assert.Zero(t, dash.Stats.TotalJobs)
	assert.Zero(t, dash.Stats.ActiveJobs)
	assert.Equal(t, 9, dash.Stats.TotalApplications)
}

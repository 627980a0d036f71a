package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
)

type fakeCounter struct {
	profiles     int
	students     int
	companies    int
	jobs         int
	applications int

	studentsErr error
	jobsErr     error

	summary    []models.CompanyPlacementSummary
	summaryErr error
}

func (f *fakeCounter) CountProfiles(ctx context.Context) (int, error) { return f.profiles, nil }
func (f *fakeCounter) CountStudents(ctx context.Context) (int, error) {
	return f.students, f.studentsErr
}
func (f *fakeCounter) CountCompanies(ctx context.Context) (int, error) { return f.companies, nil }
func (f *fakeCounter) CountJobs(ctx context.Context) (int, error)      { return f.jobs, f.jobsErr }
func (f *fakeCounter) CountApplications(ctx context.Context) (int, error) {
	return f.applications, nil
}
func (f *fakeCounter) PlacementSummary(ctx context.Context) ([]models.CompanyPlacementSummary, error) {
	return f.summary, f.summaryErr
}

func TestAnalyticsServiceCountsAllSucceed(t *testing.T) {
	repo := &fakeCounter{profiles: 100, students: 80, companies: 10, jobs: 25, applications: 300}
	svc := NewAnalyticsService(repo, nil, 0, nil)

	counts, cacheHit, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 100, counts.TotalProfiles)
	assert.Equal(t, 80, counts.TotalStudents)
	assert.Equal(t, 10, counts.TotalCompanies)
	assert.Equal(t, 25, counts.TotalJobs)
	assert.Equal(t, 300, counts.TotalApplications)
}

func TestAnalyticsServiceFailedCountersDegradeToZero(t *testing.T) {
	repo := &fakeCounter{
		profiles:     100,
		applications: 300,
		studentsErr:  errors.New("students table locked"),
		jobsErr:      errors.New("jobs table locked"),
	}
	svc := NewAnalyticsService(repo, nil, 0, nil)

	counts, _, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, counts.TotalProfiles)
	assert.Zero(t, counts.TotalStudents)
	assert.Zero(t, counts.TotalJobs)
	assert.Equal(t, 300, counts.TotalApplications)
}

func TestAnalyticsServicePlacementSummarySurfacesFailure(t *testing.T) {
	repo := &fakeCounter{summaryErr: errors.New("aggregate failed")}
	svc := NewAnalyticsService(repo, nil, 0, nil)

	_, err := svc.PlacementSummary(context.Background())
	assert.Error(t, err)
}

func TestAnalyticsServicePlacementSummaryNeverNil(t *testing.T) {
	svc := NewAnalyticsService(&fakeCounter{}, nil, 0, nil)

	summary, err := svc.PlacementSummary(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, summary)
}

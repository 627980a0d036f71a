package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/dto"
	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
)

type dashboardProfileReader interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

type dashboardCompanyReader interface {
	FindByProfileID(ctx context.Context, profileID string) (*models.Company, error)
}

type companyJobCounter interface {
	CountByCompany(ctx context.Context, companyID string) (total int, active int, err error)
}

type companyApplicationCounter interface {
	CountByCompany(ctx context.Context, companyID string) (int, error)
}

// DashboardService composes the company dashboard payload. The profile and
// company rows are required and missing either is NotFound; the counters are
// best-effort and degrade to zero individually.
type DashboardService struct {
	profiles     dashboardProfileReader
	companies    dashboardCompanyReader
	jobs         companyJobCounter
	applications companyApplicationCounter
	logger       *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(profiles dashboardProfileReader, companies dashboardCompanyReader, jobs companyJobCounter, applications companyApplicationCounter, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		profiles:     profiles,
		companies:    companies,
		jobs:         jobs,
		applications: applications,
		logger:       logger,
	}
}

// Company builds the dashboard for the calling company profile.
func (s *DashboardService) Company(ctx context.Context, profileID string) (*dto.CompanyDashboardResponse, error) {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}

	company, err := s.companies.FindByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "company record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company")
	}

	var (
		wg    sync.WaitGroup
		stats dto.CompanyJobStats
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		total, active, err := s.jobs.CountByCompany(ctx, company.ID)
		if err != nil {
			s.logger.Warn("job counters failed", zap.String("company_id", company.ID), zap.Error(err))
			return
		}
		stats.TotalJobs = total
		stats.ActiveJobs = active
	}()
	go func() {
		defer wg.Done()
		n, err := s.applications.CountByCompany(ctx, company.ID)
		if err != nil {
			s.logger.Warn("application counter failed", zap.String("company_id", company.ID), zap.Error(err))
			return
		}
		stats.TotalApplications = n
	}()
	wg.Wait()

	return &dto.CompanyDashboardResponse{
		Profile: models.ProfileInfo{
			ID:       profile.ID,
			Email:    profile.Email,
			FullName: profile.FullName,
			Role:     profile.Role,
		},
		Company: *company,
		Stats:   stats,
	}, nil
}

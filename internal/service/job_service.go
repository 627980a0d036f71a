package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
)

type jobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	ListByCompany(ctx context.Context, companyID string) ([]models.Job, error)
	ListOpen(ctx context.Context, now time.Time) ([]models.JobDetail, error)
}

type jobCompanyReader interface {
	FindByProfileID(ctx context.Context, profileID string) (*models.Company, error)
}

// CreateJobRequest is the payload for posting a new opening.
type CreateJobRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	CTC         string    `json:"ctc" validate:"required"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

// JobService handles job postings and listings. Postings are always created
// under the calling company's own record, never an arbitrary company id.
type JobService struct {
	repo      jobRepository
	companies jobCompanyReader
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewJobService constructs a JobService.
func NewJobService(repo jobRepository, companies jobCompanyReader, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *JobService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{
		repo:      repo,
		companies: companies,
		audit:     audit,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Create posts a new job for the calling company profile.
func (s *JobService) Create(ctx context.Context, req CreateJobRequest, actor *models.JWTClaims) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}

	company, err := s.companies.FindByProfileID(ctx, actor.ProfileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "company record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company")
	}

	if !req.Deadline.After(s.now().UTC()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "deadline must be in the future")
	}

	job := &models.Job{
		CompanyID:   company.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		CTC:         req.CTC,
		Deadline:    req.Deadline,
		Active:      true,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
	}

	details, _ := json.Marshal(map[string]string{"title": job.Title, "company_id": company.ID})
	s.audit.Record(ctx, models.AuditEvent{
		ActorID:     &actor.ProfileID,
		ActorRole:   &actor.Role,
		Action:      models.AuditActionJobCreate,
		TargetTable: "jobs",
		TargetID:    &job.ID,
		Details:     details,
	})

	return job, nil
}

// ListMine returns the calling company's postings.
func (s *JobService) ListMine(ctx context.Context, profileID string) ([]models.Job, error) {
	company, err := s.companies.FindByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "company record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company")
	}

	jobs, err := s.repo.ListByCompany(ctx, company.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// ListOpen returns active postings whose deadline has not passed.
func (s *JobService) ListOpen(ctx context.Context) ([]models.JobDetail, error) {
	jobs, err := s.repo.ListOpen(ctx, s.now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list open jobs")
	}
	if jobs == nil {
		jobs = []models.JobDetail{}
	}
	return jobs, nil
}

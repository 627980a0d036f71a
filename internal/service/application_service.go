package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
)

type applicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.ApplicationDetail, error)
}

type applicantStudentReader interface {
	FindByProfileID(ctx context.Context, profileID string) (*models.Student, error)
}

// ApplyRequest is the payload for a student applying to a job.
type ApplyRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
}

// ApplicationService handles student applications to postings. Applying
// requires an approved student record, and a student can apply to a given
// job at most once.
type ApplicationService struct {
	repo      applicationRepository
	students  applicantStudentReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(repo applicationRepository, students applicantStudentReader, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{repo: repo, students: students, validator: validate, logger: logger}
}

// Apply records a new application for the calling student.
func (s *ApplicationService) Apply(ctx context.Context, req ApplyRequest, actor *models.JWTClaims) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}

	student, err := s.students.FindByProfileID(ctx, actor.ProfileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if !student.IsApproved {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "student is not approved for placements")
	}

	exists, err := s.repo.Exists(ctx, req.JobID, actor.ProfileID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing application")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "already applied to this job")
	}

	app := &models.Application{
		JobID:       req.JobID,
		ApplicantID: actor.ProfileID,
		Status:      models.ApplicationApplied,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
	}
	return app, nil
}

// Detail returns an application joined with its applicant, job and company.
func (s *ApplicationService) Detail(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	detail, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	return detail, nil
}

// ListMine returns the calling student's applications.
func (s *ApplicationService) ListMine(ctx context.Context, profileID string) ([]models.ApplicationDetail, error) {
	apps, err := s.repo.ListByApplicant(ctx, profileID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	if apps == nil {
		apps = []models.ApplicationDetail{}
	}
	return apps, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusops/tpo-api/internal/models"
)

// ApplicationRepository manages persistence for job applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
	const query = `INSERT INTO applications (id, job_id, applicant_id, status, applied_at)
        VALUES (:id, :job_id, :applicant_id, :status, :applied_at)`
	if _, err := r.db.NamedExecContext(ctx, query, app); err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// Exists reports whether the applicant has already applied to a job.
func (r *ApplicationRepository) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	const query = `SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, jobID, applicantID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check application: %w", err)
	}
	return true, nil
}

// FindDetail fetches an application joined with its applicant, job and
// company.
func (r *ApplicationRepository) FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	const query = `SELECT a.id, a.job_id, a.applicant_id, a.status, a.applied_at,
        p.full_name AS applicant_name, p.email AS applicant_email,
        j.title AS job_title, j.location AS job_location,
        c.name AS company_name
        FROM applications a
        JOIN profiles p ON p.id = a.applicant_id
        JOIN jobs j ON j.id = a.job_id
        JOIN companies c ON c.id = j.company_id
        WHERE a.id = $1`
	var detail models.ApplicationDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find application detail: %w", err)
	}
	return &detail, nil
}

// ListByApplicant returns a student's applications, newest first.
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]models.ApplicationDetail, error) {
	const query = `SELECT a.id, a.job_id, a.applicant_id, a.status, a.applied_at,
        p.full_name AS applicant_name, p.email AS applicant_email,
        j.title AS job_title, j.location AS job_location,
        c.name AS company_name
        FROM applications a
        JOIN profiles p ON p.id = a.applicant_id
        JOIN jobs j ON j.id = a.job_id
        JOIN companies c ON c.id = j.company_id
        WHERE a.applicant_id = $1
        ORDER BY a.applied_at DESC`
	var details []models.ApplicationDetail
	if err := r.db.SelectContext(ctx, &details, query, applicantID); err != nil {
		return nil, fmt.Errorf("list applicant applications: %w", err)
	}
	return details, nil
}

// CountByCompany returns the number of applications across a company's jobs.
func (r *ApplicationRepository) CountByCompany(ctx context.Context, companyID string) (int, error) {
	const query = `SELECT COUNT(*) FROM applications a JOIN jobs j ON j.id = a.job_id WHERE j.company_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, companyID); err != nil {
		return 0, fmt.Errorf("count company applications: %w", err)
	}
	return total, nil
}

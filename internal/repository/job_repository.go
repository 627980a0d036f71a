package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusops/tpo-api/internal/models"
)

// JobRepository manages persistence for job postings.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository constructs a JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job posting.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	const query = `INSERT INTO jobs (id, company_id, title, description, location, ctc, deadline, active, created_at, updated_at)
        VALUES (:id, :company_id, :title, :description, :location, :ctc, :deadline, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// ListByCompany returns all jobs posted by a company, newest first.
func (r *JobRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	const query = `SELECT id, company_id, title, description, location, ctc, deadline, active, created_at, updated_at
        FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, companyID); err != nil {
		return nil, fmt.Errorf("list company jobs: %w", err)
	}
	return jobs, nil
}

// ListOpen returns active postings whose deadline has not passed, joined with
// the company name, newest first.
func (r *JobRepository) ListOpen(ctx context.Context, now time.Time) ([]models.JobDetail, error) {
	const query = `SELECT j.id, j.company_id, j.title, j.description, j.location, j.ctc, j.deadline, j.active, j.created_at, j.updated_at,
        c.name AS company_name
        FROM jobs j
        JOIN companies c ON c.id = j.company_id
        WHERE j.active = TRUE AND j.deadline >= $1
        ORDER BY j.created_at DESC`
	var jobs []models.JobDetail
	if err := r.db.SelectContext(ctx, &jobs, query, now); err != nil {
		return nil, fmt.Errorf("list open jobs: %w", err)
	}
	return jobs, nil
}

// CountByCompany returns total and active posting counts for a company.
func (r *JobRepository) CountByCompany(ctx context.Context, companyID string) (total int, active int, err error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM jobs WHERE company_id = $1`
	row := r.db.QueryRowxContext(ctx, query, companyID)
	if err := row.Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("count company jobs: %w", err)
	}
	return total, active, nil
}

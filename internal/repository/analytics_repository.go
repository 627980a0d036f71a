package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/tpo-api/internal/models"
)

// AnalyticsRepository exposes read-optimised count queries for dashboards.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository instantiates the repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) count(ctx context.Context, table string) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// CountProfiles returns the total number of identity records.
func (r *AnalyticsRepository) CountProfiles(ctx context.Context) (int, error) {
	return r.count(ctx, "profiles")
}

// CountStudents returns the total number of student records.
func (r *AnalyticsRepository) CountStudents(ctx context.Context) (int, error) {
	return r.count(ctx, "students")
}

// CountCompanies returns the total number of companies.
func (r *AnalyticsRepository) CountCompanies(ctx context.Context) (int, error) {
	return r.count(ctx, "companies")
}

// CountJobs returns the total number of job postings.
func (r *AnalyticsRepository) CountJobs(ctx context.Context) (int, error) {
	return r.count(ctx, "jobs")
}

// CountApplications returns the total number of applications.
func (r *AnalyticsRepository) CountApplications(ctx context.Context) (int, error) {
	return r.count(ctx, "applications")
}

// PlacementSummary aggregates hiring activity per company for report exports.
func (r *AnalyticsRepository) PlacementSummary(ctx context.Context) ([]models.CompanyPlacementSummary, error) {
	const query = `SELECT c.id AS company_id, c.name AS company_name,
        COUNT(DISTINCT j.id) AS jobs,
        COUNT(DISTINCT a.id) AS applications,
        COUNT(DISTINCT o.id) AS offers_extended,
        COUNT(DISTINCT o.id) FILTER (WHERE o.offer_status = 'Accepted') AS offers_accepted
        FROM companies c
        LEFT JOIN jobs j ON j.company_id = c.id
        LEFT JOIN applications a ON a.job_id = j.id
        LEFT JOIN offer_letters o ON o.application_id = a.id
        GROUP BY c.id, c.name
        ORDER BY c.name ASC`
	var summaries []models.CompanyPlacementSummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("placement summary: %w", err)
	}
	return summaries, nil
}

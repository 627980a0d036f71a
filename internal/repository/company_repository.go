package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/tpo-api/internal/models"
)

// CompanyRepository manages persistence for recruiting companies.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository constructs a CompanyRepository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, profile_id, name, industry, website, created_at, updated_at`

// FindByProfileID fetches the company owned by a profile.
func (r *CompanyRepository) FindByProfileID(ctx context.Context, profileID string) (*models.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE profile_id = $1 LIMIT 1`, companyColumns)
	var company models.Company
	if err := r.db.GetContext(ctx, &company, query, profileID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find company by profile: %w", err)
	}
	return &company, nil
}

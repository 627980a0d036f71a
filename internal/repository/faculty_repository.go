package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/tpo-api/internal/models"
)

// FacultyRepository manages persistence for faculty and their roll ranges.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs a FacultyRepository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// FindByProfileID resolves the faculty record owned by a profile.
func (r *FacultyRepository) FindByProfileID(ctx context.Context, profileID string) (*models.Faculty, error) {
	const query = `SELECT id, profile_id, department, created_at FROM faculty WHERE profile_id = $1 LIMIT 1`
	var faculty models.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, profileID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find faculty by profile: %w", err)
	}
	return &faculty, nil
}

// Ranges returns all roll-number ranges configured for a faculty member.
// An empty result is not an error.
func (r *FacultyRepository) Ranges(ctx context.Context, facultyID string) ([]models.FacultyStudentRange, error) {
	const query = `SELECT id, faculty_id, start_roll_number, end_roll_number FROM faculty_student_ranges WHERE faculty_id = $1 ORDER BY start_roll_number ASC`
	var ranges []models.FacultyStudentRange
	if err := r.db.SelectContext(ctx, &ranges, query, facultyID); err != nil {
		return nil, fmt.Errorf("list faculty ranges: %w", err)
	}
	return ranges, nil
}

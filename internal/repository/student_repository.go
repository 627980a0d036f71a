package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/tpo-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, profile_id, roll_number, branch, status, is_approved, approved_by, approved_at, created_at, updated_at`

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1 LIMIT 1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by id: %w", err)
	}
	return &student, nil
}

// FindByProfileID fetches the student record owned by a profile.
func (r *StudentRepository) FindByProfileID(ctx context.Context, profileID string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE profile_id = $1 LIMIT 1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, profileID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by profile: %w", err)
	}
	return &student, nil
}

// ListByRollRange returns students whose roll number falls inside the
// inclusive range, ordered by roll number.
func (r *StudentRepository) ListByRollRange(ctx context.Context, start, end string) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE roll_number BETWEEN $1 AND $2 ORDER BY roll_number ASC`, studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, start, end); err != nil {
		return nil, fmt.Errorf("list students by roll range: %w", err)
	}
	return students, nil
}

// UpdateApproval writes the decision, derived flag, approver and timestamp in
// a single statement and returns the updated row. sql.ErrNoRows signals a
// missing student.
func (r *StudentRepository) UpdateApproval(ctx context.Context, id string, status models.ApprovalStatus, approverID string, decidedAt time.Time) (*models.Student, error) {
	query := fmt.Sprintf(`UPDATE students
        SET status = $2, is_approved = $3, approved_by = $4, approved_at = $5, updated_at = $5
        WHERE id = $1
        RETURNING %s`, studentColumns)
	var student models.Student
	err := r.db.GetContext(ctx, &student, query, id, status, status == models.ApprovalApproved, approverID, decidedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update student approval: %w", err)
	}
	return &student, nil
}

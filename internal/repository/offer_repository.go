package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/tpo-api/internal/models"
)

// OfferRepository manages persistence for offer letters.
type OfferRepository struct {
	db *sqlx.DB
}

// NewOfferRepository constructs an OfferRepository.
func NewOfferRepository(db *sqlx.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Respond updates an offer's status and response timestamp in one statement.
// The predicate ties the offer to the responding student's profile, so a
// non-owner matches zero rows and gets sql.ErrNoRows.
func (r *OfferRepository) Respond(ctx context.Context, offerID, studentProfileID string, status models.OfferStatus, respondedAt time.Time) (*models.OfferLetter, error) {
	const query = `UPDATE offer_letters o
        SET offer_status = $3, student_response_at = $4
        FROM students s
        WHERE o.id = $1 AND o.student_id = s.id AND s.profile_id = $2
        RETURNING o.id, o.application_id, o.student_id, o.position, o.ctc, o.offer_status, o.student_response_at, o.issued_at`
	var offer models.OfferLetter
	err := r.db.GetContext(ctx, &offer, query, offerID, studentProfileID, status, respondedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("respond to offer: %w", err)
	}
	return &offer, nil
}

// FindDetailOwned fetches an offer with letter data, scoped to the owning
// student's profile.
func (r *OfferRepository) FindDetailOwned(ctx context.Context, offerID, studentProfileID string) (*models.OfferLetterDetail, error) {
	const query = `SELECT o.id, o.application_id, o.student_id, o.position, o.ctc, o.offer_status, o.student_response_at, o.issued_at,
        p.full_name AS student_name, s.roll_number, c.name AS company_name
        FROM offer_letters o
        JOIN students s ON s.id = o.student_id
        JOIN profiles p ON p.id = s.profile_id
        JOIN applications a ON a.id = o.application_id
        JOIN jobs j ON j.id = a.job_id
        JOIN companies c ON c.id = j.company_id
        WHERE o.id = $1 AND s.profile_id = $2`
	var detail models.OfferLetterDetail
	if err := r.db.GetContext(ctx, &detail, query, offerID, studentProfileID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find offer detail: %w", err)
	}
	return &detail, nil
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
	"github.com/campusops/tpo-api/pkg/export"
)

type offerRepository interface {
	Respond(ctx context.Context, offerID, studentProfileID string, status models.OfferStatus, respondedAt time.Time) (*models.OfferLetter, error)
	FindDetailOwned(ctx context.Context, offerID, studentProfileID string) (*models.OfferLetterDetail, error)
}

type letterRenderer interface {
	RenderOfferLetter(letter export.OfferLetter) ([]byte, error)
}

// OfferService handles the student side of offer letters: accepting or
// declining an offer and downloading the rendered letter. Every read and
// write is scoped to the calling student, so an offer belonging to another
// student is indistinguishable from one that does not exist.
type OfferService struct {
	repo     offerRepository
	renderer letterRenderer
	audit    auditRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewOfferService constructs the offer service.
func NewOfferService(repo offerRepository, renderer letterRenderer, audit auditRecorder, logger *zap.Logger) *OfferService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfferService{
		repo:     repo,
		renderer: renderer,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// Respond records the student's decision on an offer. Only Accepted and
// Declined are valid responses; the timestamp is stamped server-side.
func (s *OfferService) Respond(ctx context.Context, offerID string, status models.OfferStatus, actor *models.JWTClaims) (*models.OfferLetter, error) {
	if !status.Response() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "offer_status must be Accepted or Declined")
	}
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}

	offer, err := s.repo.Respond(ctx, offerID, actor.ProfileID, status, s.now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "offer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record offer response")
	}

	details, _ := json.Marshal(map[string]string{"offer_status": string(status)})
	s.audit.Record(ctx, models.AuditEvent{
		ActorID:     &actor.ProfileID,
		Action:      models.AuditActionOfferResponse,
		TargetTable: "offer_letters",
		TargetID:    &offer.ID,
		Details:     details,
	})

	return offer, nil
}

// Letter renders the offer letter PDF for an offer the caller owns.
func (s *OfferService) Letter(ctx context.Context, offerID string, actor *models.JWTClaims) ([]byte, *models.OfferLetterDetail, error) {
	if actor == nil {
		return nil, nil, appErrors.ErrUnauthorized
	}
	detail, err := s.repo.FindDetailOwned(ctx, offerID, actor.ProfileID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "offer not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load offer")
	}

	pdf, err := s.renderer.RenderOfferLetter(export.OfferLetter{
		StudentName: detail.StudentName,
		RollNumber:  detail.RollNumber,
		CompanyName: detail.CompanyName,
		Position:    detail.Position,
		CTC:         detail.CTC,
		IssuedAt:    detail.IssuedAt.Format("02 Jan 2006"),
		Status:      string(detail.OfferStatus),
	})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render offer letter")
	}
	return pdf, detail, nil
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/models"
)

type auditRepository interface {
	Insert(ctx context.Context, event *models.AuditEvent) error
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEventDetail, error)
}

// AuditService records privileged actions and serves the audit trail.
//
// Recording is deliberately fail-soft: an audit write must never abort the
// primary action it accompanies, so failures are logged and swallowed.
type AuditService struct {
	repo   auditRepository
	logger *zap.Logger
}

// NewAuditService constructs the audit service.
func NewAuditService(repo auditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// Record appends one audit event. It never returns an error; store failures
// are reported to the operational log only.
func (s *AuditService) Record(ctx context.Context, event models.AuditEvent) {
	if err := s.repo.Insert(ctx, &event); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", event.Action),
			zap.String("target_table", event.TargetTable),
			zap.Error(err))
	}
}

// List returns events matching the filter, newest first. A query failure is
// logged and an empty slice returned so dashboards that embed the trail keep
// rendering.
func (s *AuditService) List(ctx context.Context, filter models.AuditFilter) []models.AuditEventDetail {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("audit list failed", zap.Error(err))
		return []models.AuditEventDetail{}
	}
	if events == nil {
		events = []models.AuditEventDetail{}
	}
	return events
}

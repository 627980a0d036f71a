package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
)

type approvalStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	UpdateApproval(ctx context.Context, id string, status models.ApprovalStatus, approverID string, decidedAt time.Time) (*models.Student, error)
}

type approvalScope interface {
	InScope(ctx context.Context, profileID string, student *models.Student) (bool, error)
}

type auditRecorder interface {
	Record(ctx context.Context, event models.AuditEvent)
}

type studentNotifier interface {
	Dispatch(profileID, title, body string) error
}

// ApprovalService transitions students between placement-eligibility states.
type ApprovalService struct {
	students approvalStudentRepository
	scope    approvalScope
	audit    auditRecorder
	notifier studentNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewApprovalService constructs the approval service.
func NewApprovalService(students approvalStudentRepository, scope approvalScope, audit auditRecorder, notifier studentNotifier, logger *zap.Logger) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{
		students: students,
		scope:    scope,
		audit:    audit,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Decide applies an approval decision to a student.
//
// Only Approved and Rejected are accepted; anything else is rejected before
// touching the store. Faculty actors may only decide students inside their
// own roll ranges; admins bypass the scope check. The status and its derived
// is_approved flag are written by one UPDATE so they can never disagree.
// Repeating the current decision is an idempotent no-op update.
func (s *ApprovalService) Decide(ctx context.Context, studentID string, decision models.ApprovalStatus, actor *models.JWTClaims) (*models.Student, error) {
	if !decision.Decision() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid approval status %q", decision))
	}
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	if actor.Role == models.RoleFaculty {
		inScope, err := s.scope.InScope(ctx, actor.ProfileID, student)
		if err != nil {
			return nil, err
		}
		if !inScope {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "student outside your roll ranges")
		}
	}

	updated, err := s.students.UpdateApproval(ctx, studentID, decision, actor.ProfileID, s.now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}

	details, _ := json.Marshal(map[string]string{"decision": string(decision)})
	actorRole := actor.Role
	targetRole := models.RoleStudent
	s.audit.Record(ctx, models.AuditEvent{
		ActorID:     &actor.ProfileID,
		ActorRole:   &actorRole,
		Action:      models.AuditActionStudentApproval,
		TargetTable: "students",
		TargetID:    &updated.ID,
		TargetRole:  &targetRole,
		Details:     details,
	})

	if s.notifier != nil {
		body := fmt.Sprintf("Your placement registration has been %s.", decision)
		if err := s.notifier.Dispatch(updated.ProfileID, "Placement status updated", body); err != nil {
			s.logger.Warn("approval notification enqueue failed",
				zap.String("student_id", updated.ID), zap.Error(err))
		}
	}

	return updated, nil
}

package models

import (
	"encoding/json"
	"time"
)

// AuditAction constants represent privileged actions to be logged.
const (
	AuditActionLogin           = "login"
	AuditActionLogout          = "logout"
	AuditActionStudentApproval = "student_approval"
	AuditActionOfferResponse   = "offer_response"
	AuditActionJobCreate       = "job_create"
	AuditActionReportExport    = "report_export"
)

// AuditEvent is an append-only record of who did what to which target.
// Events are never updated or deleted.
type AuditEvent struct {
	ID          string          `db:"id" json:"id"`
	ActorID     *string         `db:"actor_id" json:"actor_id,omitempty"`
	ActorRole   *Role           `db:"actor_role" json:"actor_role,omitempty"`
	Action      string          `db:"action" json:"action"`
	TargetTable string          `db:"target_table" json:"target_table"`
	TargetID    *string         `db:"target_id" json:"target_id,omitempty"`
	TargetRole  *Role           `db:"target_role" json:"target_role,omitempty"`
	Details     json.RawMessage `db:"details" json:"details,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// AuditActor is the denormalised actor summary joined onto listed events.
type AuditActor struct {
	ID       *string `db:"actor_id" json:"id,omitempty"`
	FullName *string `db:"actor_name" json:"full_name,omitempty"`
	Email    *string `db:"actor_email" json:"email,omitempty"`
}

// AuditEventDetail is an audit event with its actor summary.
type AuditEventDetail struct {
	AuditEvent
	Actor AuditActor `json:"actor"`
}

// AuditFilter narrows the audit listing; all provided fields are ANDed.
type AuditFilter struct {
	TargetTable string
	TargetID    string
	TargetRole  string
	Limit       int
	Offset      int
}

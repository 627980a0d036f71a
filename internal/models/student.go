package models

import "time"

// ApprovalStatus is the placement-eligibility state of a student record.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// Decision reports whether the status is a terminal faculty decision.
func (s ApprovalStatus) Decision() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// Student represents a placement candidate registered with the TPO.
//
// IsApproved mirrors Status and both are written by the same UPDATE so the
// pair can never disagree.
type Student struct {
	ID         string         `db:"id" json:"id"`
	ProfileID  string         `db:"profile_id" json:"profile_id"`
	RollNumber string         `db:"roll_number" json:"roll_number"`
	Branch     string         `db:"branch" json:"branch"`
	Status     ApprovalStatus `db:"status" json:"status"`
	IsApproved bool           `db:"is_approved" json:"is_approved"`
	ApprovedBy *string        `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt *time.Time     `db:"approved_at" json:"approved_at,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

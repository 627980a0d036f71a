package models

import "time"

// ApplicationStatus tracks an application through the hiring funnel.
type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "Applied"
	ApplicationShortlisted ApplicationStatus = "Shortlisted"
	ApplicationRejected    ApplicationStatus = "Rejected"
	ApplicationOffered     ApplicationStatus = "Offered"
)

// Application records a student applying to a job.
type Application struct {
	ID          string            `db:"id" json:"id"`
	JobID       string            `db:"job_id" json:"job_id"`
	ApplicantID string            `db:"applicant_id" json:"applicant_id"`
	Status      ApplicationStatus `db:"status" json:"status"`
	AppliedAt   time.Time         `db:"applied_at" json:"applied_at"`
}

// ApplicationDetail is an application joined with its applicant profile, job
// and company for the lookup endpoint.
type ApplicationDetail struct {
	Application
	ApplicantName  string `db:"applicant_name" json:"applicant_name"`
	ApplicantEmail string `db:"applicant_email" json:"applicant_email"`
	JobTitle       string `db:"job_title" json:"job_title"`
	JobLocation    string `db:"job_location" json:"job_location"`
	CompanyName    string `db:"company_name" json:"company_name"`
}

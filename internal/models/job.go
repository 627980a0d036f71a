package models

import "time"

// Job is an opening posted by a company.
type Job struct {
	ID          string    `db:"id" json:"id"`
	CompanyID   string    `db:"company_id" json:"company_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Location    string    `db:"location" json:"location"`
	CTC         string    `db:"ctc" json:"ctc"`
	Deadline    time.Time `db:"deadline" json:"deadline"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// JobDetail joins a job with its company name for listings.
type JobDetail struct {
	Job
	CompanyName string `db:"company_name" json:"company_name"`
}

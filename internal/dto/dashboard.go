package dto

import "github.com/campusops/tpo-api/internal/models"

// CompanyJobStats summarises a company's posting activity.
type CompanyJobStats struct {
	TotalJobs         int `json:"total_jobs"`
	ActiveJobs        int `json:"active_jobs"`
	TotalApplications int `json:"total_applications"`
}

// CompanyDashboardResponse is the payload behind GET /companies/dashboard.
// Profile and Company are required rows; Stats are best-effort counters.
type CompanyDashboardResponse struct {
	Profile models.ProfileInfo `json:"profile"`
	Company models.Company     `json:"company"`
	Stats   CompanyJobStats    `json:"stats"`
}

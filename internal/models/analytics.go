package models

import "time"

// PlacementCounts carries the portal-wide totals shown on the admin analytics
// card row. A failed counter is substituted with zero, never an error.
type PlacementCounts struct {
	TotalProfiles     int `json:"total_profiles"`
	TotalStudents     int `json:"total_students"`
	TotalCompanies    int `json:"total_companies"`
	TotalJobs         int `json:"total_jobs"`
	TotalApplications int `json:"total_applications"`
}

// SystemMetrics is a lightweight snapshot of runtime health for the admin
// analytics endpoints.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// CompanyPlacementSummary aggregates hiring activity per company for the
// placement report export.
type CompanyPlacementSummary struct {
	CompanyID      string `db:"company_id" json:"company_id"`
	CompanyName    string `db:"company_name" json:"company_name"`
	Jobs           int    `db:"jobs" json:"jobs"`
	Applications   int    `db:"applications" json:"applications"`
	OffersExtended int    `db:"offers_extended" json:"offers_extended"`
	OffersAccepted int    `db:"offers_accepted" json:"offers_accepted"`
}

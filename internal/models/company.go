package models

import "time"

// Company represents a recruiting organisation registered with the TPO.
type Company struct {
	ID        string    `db:"id" json:"id"`
	ProfileID string    `db:"profile_id" json:"profile_id"`
	Name      string    `db:"name" json:"name"`
	Industry  string    `db:"industry" json:"industry"`
	Website   string    `db:"website" json:"website"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

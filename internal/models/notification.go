package models

import "time"

// Notification is a per-user message shown on the portal.
type Notification struct {
	ID        string    `db:"id" json:"id"`
	ProfileID string    `db:"profile_id" json:"profile_id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

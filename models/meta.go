// models/meta.go
package models

import "time"

// Refresh run statuses.
const (
	RefreshStatusRunning   = "running"
	RefreshStatusSucceeded = "succeeded"
	RefreshStatusFailed    = "failed"
)

// RefreshRun tracks one execution of the scheduled tide refresh.
type RefreshRun struct {
	ID             string     `db:"id" json:"id"`
	StartedAt      time.Time  `db:"started_at" json:"started_at"`
	FinishedAt     *time.Time `db:"finished_at" json:"finished_at,omitempty"`
	ZonesTotal     int        `db:"zones_total" json:"zones_total"`
	ZonesProcessed int        `db:"zones_processed" json:"zones_processed"`
	Status         string     `db:"status" json:"status"`
	ErrorMessage   string     `db:"error_message" json:"error_message,omitempty"`
}

package sync

import (
	"errors"
	"time"
)

// Trigger types recorded in the sync status.
const (
	TriggerAuto   = "AUTO"
	TriggerManual = "MANUAL"
)

// ErrSyncInFlight is returned when a run is requested while another one is
// still executing. Overlapping runs would race on the destination read and
// could append duplicate rows, so they are rejected outright.
var ErrSyncInFlight = errors.New("a sync is already in progress")

// Result reports what one sync run did.
type Result struct {
	Inserted int `json:"insertedCount"`
	Skipped  int `json:"skippedCount"`
}

// DateRange is an inclusive calendar-date range, YYYY-MM-DD.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Status is the last-sync record shown to operators. It lives only in process
// memory and is lost on restart; that is a documented limitation, not a bug.
// It is always replaced wholesale, never merged, so auto and manual runs
// cannot corrupt each other's fields.
type Status struct {
	LastUpdated *time.Time `json:"lastUpdated"`
	Type        string     `json:"type,omitempty"`
	Range       *DateRange `json:"range,omitempty"`
}

// SyncRun is the persisted history entry written around every run.
type SyncRun struct {
	ID        string    `json:"id" bson:"_id"`
	StartTime time.Time `json:"start_time" bson:"start_time"`
	EndTime   time.Time `json:"end_time" bson:"end_time"`
	Status    string    `json:"status" bson:"status"` // "in_progress", "success", "failed"
	Range     DateRange `json:"range" bson:"range"`
	Inserted  int       `json:"inserted" bson:"inserted"`
	Skipped   int       `json:"skipped" bson:"skipped"`
	Error     string    `json:"error,omitempty" bson:"error,omitempty"`
}

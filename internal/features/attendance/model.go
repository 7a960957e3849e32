package attendance

import (
	"time"

	"attendance-sync/internal/dates"
)

// InProgress is the sentinel rendered for clock-out and working hours when an
// employee has punched in but not yet out. It is uploaded as-is, not omitted.
const InProgress = "IN-PROGRESS"

// StatusActive is the default status when the time register carries none.
const StatusActive = "ACTIVE"

// Record is one employee-day attendance row produced by the source reader.
// Records are immutable and identified by (EmployeeID, calendar date).
type Record struct {
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	Date         time.Time `json:"date"`
	ClockIn      string    `json:"clockIn"`
	ClockOut     string    `json:"clockOut"`
	Status       string    `json:"status"`
	WorkingHours string    `json:"workingHours"`
}

// Key returns the composite dedupe key employeeId + "_" + normalized date.
// The second return is false when the date cannot be normalized; such
// records carry no key and are excluded from dedupe sets.
func (r Record) Key() (string, bool) {
	norm, ok := dates.Normalize(r.Date)
	if !ok {
		return "", false
	}
	return r.EmployeeID + "_" + norm, true
}

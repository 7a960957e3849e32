package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"attendance-sync/internal/config"
	"attendance-sync/internal/database"
)

type Repository interface {
	// FetchRange returns attendance records for the inclusive date range,
	// scoped to the configured company and department, deduplicated by
	// (employee, day). start and end are YYYY-MM-DD; callers validate order.
	FetchRange(ctx context.Context, start, end string) ([]Record, error)
}

type RepositoryImpl struct {
	db             *sql.DB
	companyCode    string
	departmentCode string
}

func NewRepository(db *database.AttendanceDB, cfg *config.Config) Repository {
	return &RepositoryImpl{
		db:             db.DB,
		companyCode:    cfg.CompanyCode,
		departmentCode: cfg.DepartmentCode,
	}
}

// Order by date descending is not required downstream but keeps runs stable.
const fetchRangeQuery = `
	SELECT
		e.paycode,
		TRIM(e.empname),
		t.date_office::date,
		t.in1,
		t.out2,
		COALESCE(t.status, '')
	FROM employees e
	INNER JOIN time_registers t ON e.paycode = t.paycode
	WHERE e.company_code = $1
	  AND e.department_code = $2
	  AND t.date_office::date BETWEEN $3 AND $4
	  AND t.in1 IS NOT NULL
	ORDER BY t.date_office DESC`

func (r *RepositoryImpl) FetchRange(ctx context.Context, start, end string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, fetchRangeQuery, r.companyCode, r.departmentCode, start, end)
	if err != nil {
		return nil, fmt.Errorf("query attendance range: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			empID, empName, status string
			date, clockIn          time.Time
			clockOut               sql.NullTime
		)
		if err := rows.Scan(&empID, &empName, &date, &clockIn, &clockOut, &status); err != nil {
			return nil, fmt.Errorf("scan attendance row: %w", err)
		}
		records = append(records, buildRecord(empID, empName, date, clockIn, clockOut, status))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance rows: %w", err)
	}

	return dedupe(records), nil
}

// buildRecord computes the derived fields. A missing clock-out renders both
// the clock-out and the working hours as the in-progress sentinel.
func buildRecord(empID, empName string, date, clockIn time.Time, clockOut sql.NullTime, status string) Record {
	rec := Record{
		EmployeeID:   strings.TrimSpace(empID),
		EmployeeName: strings.TrimSpace(empName),
		Date:         date,
		ClockIn:      clockIn.Format("15:04:05"),
		Status:       status,
	}
	if rec.Status == "" {
		rec.Status = StatusActive
	}

	if !clockOut.Valid {
		rec.ClockOut = InProgress
		rec.WorkingHours = InProgress
		return rec
	}

	rec.ClockOut = clockOut.Time.Format("15:04:05")
	rec.WorkingHours = formatWorkingHours(clockIn, clockOut.Time)
	return rec
}

// formatWorkingHours renders the whole-minute duration between the punches
// as HH:MM.
func formatWorkingHours(in, out time.Time) string {
	minutes := int(out.Sub(in).Minutes())
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// dedupe keeps the first record seen per (employee, day), guarding against
// duplicate timeclock punches upstream. Iteration order is preserved.
func dedupe(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		key, ok := rec.Key()
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

package sync

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"attendance-sync/internal/dates"
	"attendance-sync/internal/smartsheet"
)

// ErrColumnMissing indicates the destination sheet lacks a column the sync
// depends on. This is a configuration problem and fatal for the run.
var ErrColumnMissing = errors.New("required column not found on destination sheet")

// Destination column titles the sync binds to, in normalized form.
const (
	columnEmployeeID = "empid"
	columnDate       = "date"
)

// normalizeTitle lowercases a column title and strips spaces and underscores
// so "EmpId", "emp_id" and "Emp Id" all bind to the same selector.
func normalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	title = strings.ReplaceAll(title, " ", "")
	return strings.ReplaceAll(title, "_", "")
}

func findColumn(columns []smartsheet.Column, normTitle string) (smartsheet.Column, bool) {
	for _, col := range columns {
		if strings.ToLower(strings.TrimSpace(col.Title)) == normTitle {
			return col, true
		}
	}
	return smartsheet.Column{}, false
}

// existingKeys builds the destination key set from a sheet snapshot. Rows
// missing an employee id or a parseable date are sparse data, not errors;
// they simply contribute no key.
func existingKeys(sheet *smartsheet.Sheet) (map[string]struct{}, error) {
	empCol, ok := findColumn(sheet.Columns, columnEmployeeID)
	if !ok {
		return nil, fmt.Errorf("%w: EmpId", ErrColumnMissing)
	}
	dateCol, ok := findColumn(sheet.Columns, columnDate)
	if !ok {
		return nil, fmt.Errorf("%w: Date", ErrColumnMissing)
	}

	keys := make(map[string]struct{}, len(sheet.Rows))
	for _, row := range sheet.Rows {
		empVal, ok := row.CellValue(empCol.ID)
		if !ok {
			continue
		}
		rawDate, ok := row.CellValue(dateCol.ID)
		if !ok {
			continue
		}

		emp := cellString(empVal)
		norm, ok := dates.Normalize(rawDate)
		if emp == "" || !ok {
			continue
		}
		keys[emp+"_"+norm] = struct{}{}
	}
	return keys, nil
}

// cellString renders a JSON cell value the way it is used in keys. Numeric
// employee ids come back as float64 and must not grow a decimal point.
func cellString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

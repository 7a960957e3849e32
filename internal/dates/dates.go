// Package dates canonicalizes the heterogeneous date representations seen on
// both sides of the sync. Source rows carry real timestamps, the destination
// sheet stores whatever text the last writer produced (ISO or DD/MM/YYYY), and
// the two must still collapse to the same dedupe key.
package dates

import (
	"strconv"
	"strings"
	"time"
)

const canonicalLayout = "2006-01-02"

// Layouts tried by Normalize for plain strings, most common first.
var fallbackLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalize converts a date value to the canonical YYYY-MM-DD form in UTC.
// It accepts time.Time, ISO-ish strings and DD/MM/YYYY strings. The second
// return is false when the value cannot be interpreted as a date; callers
// treat that as "no key", never as a fatal error.
func Normalize(value any) (string, bool) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return v.UTC().Format(canonicalLayout), true
	case string:
		return normalizeString(v)
	case nil:
		return "", false
	default:
		return "", false
	}
}

func normalizeString(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	if strings.Contains(s, "/") {
		if t, ok := parseDDMMYYYY(s); ok {
			return t.Format(canonicalLayout), true
		}
		return "", false
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(canonicalLayout), true
		}
	}
	return "", false
}

// parseDDMMYYYY parses "DD/MM/YYYY" into a UTC calendar date. All three
// components must be numeric and non-zero.
func parseDDMMYYYY(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n == 0 {
			return time.Time{}, false
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// FormatDisplay renders a timestamp as DD/MM/YYYY in the given display
// timezone. This is presentation only and deliberately independent of the
// canonical key format.
func FormatDisplay(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("02/01/2006")
}

// ParseISO parses a YYYY-MM-DD string as a UTC calendar date.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(canonicalLayout, s)
}

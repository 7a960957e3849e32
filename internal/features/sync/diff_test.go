package sync

import (
	"testing"
	"time"

	"attendance-sync/internal/features/attendance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(emp string, y int, m time.Month, d int) attendance.Record {
	return attendance.Record{
		EmployeeID: emp,
		Date:       time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

func keySet(records ...attendance.Record) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, r := range records {
		if k, ok := r.Key(); ok {
			keys[k] = struct{}{}
		}
	}
	return keys
}

func TestMissingRecordsEmptySource(t *testing.T) {
	got := missingRecords(nil, keySet(rec("E1", 2024, 1, 1)))
	assert.Empty(t, got)
}

func TestMissingRecordsEmptyDestination(t *testing.T) {
	records := []attendance.Record{
		rec("E1", 2024, 1, 1),
		rec("E2", 2024, 1, 2),
		rec("E3", 2024, 1, 3),
	}

	got := missingRecords(records, map[string]struct{}{})

	require.Equal(t, records, got, "everything is new and order is preserved")
}

func TestMissingRecordsSubtractsByKey(t *testing.T) {
	records := []attendance.Record{
		rec("E1", 2024, 1, 1),
		rec("E2", 2024, 1, 1),
		rec("E1", 2024, 1, 2),
	}
	existing := keySet(rec("E2", 2024, 1, 1))

	got := missingRecords(records, existing)

	require.Len(t, got, 2)
	assert.Equal(t, "E1", got[0].EmployeeID)
	assert.Equal(t, "E1", got[1].EmployeeID)
}

func TestMissingRecordsIdempotent(t *testing.T) {
	records := []attendance.Record{
		rec("E1", 2024, 1, 1),
		rec("E2", 2024, 1, 2),
	}
	existing := keySet(rec("E1", 2024, 1, 1))

	first := missingRecords(records, existing)
	require.Len(t, first, 1)

	// Re-applying with the first pass committed yields nothing.
	for k := range keySet(first...) {
		existing[k] = struct{}{}
	}
	second := missingRecords(first, existing)
	assert.Empty(t, second)
}

func TestMissingRecordsSkipsKeyless(t *testing.T) {
	records := []attendance.Record{
		{EmployeeID: "E1"}, // zero date, no key
		rec("E2", 2024, 1, 1),
	}

	got := missingRecords(records, map[string]struct{}{})

	require.Len(t, got, 1)
	assert.Equal(t, "E2", got[0].EmployeeID)
}

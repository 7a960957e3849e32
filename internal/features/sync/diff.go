package sync

import "attendance-sync/internal/features/attendance"

// missingRecords returns the source records whose key is absent from the
// destination key set, preserving source order. Pure function, no I/O.
func missingRecords(records []attendance.Record, existing map[string]struct{}) []attendance.Record {
	var missing []attendance.Record
	for _, rec := range records {
		key, ok := rec.Key()
		if !ok {
			continue
		}
		if _, found := existing[key]; !found {
			missing = append(missing, rec)
		}
	}
	return missing
}

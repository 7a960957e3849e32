package sync

import (
	"context"
	"fmt"
	"time"

	"attendance-sync/internal/dates"
	"attendance-sync/internal/features/attendance"
	"attendance-sync/internal/smartsheet"

	"go.uber.org/zap"
)

const (
	// uploadChunkSize bounds each append payload; the destination API
	// rejects oversized batches.
	uploadChunkSize = 50
	// uploadChunkPause throttles consecutive chunks against destination
	// rate limiting. Not an optimization target.
	uploadChunkPause = 800 * time.Millisecond
)

// columnBindings is the declared mapping from normalized destination column
// titles to record fields. Columns outside this table get an empty value.
// The Date column is handled separately because it always carries the
// display-formatted date, never the raw stored one.
var columnBindings = map[string]func(attendance.Record) string{
	"empid":        func(r attendance.Record) string { return r.EmployeeID },
	"empname":      func(r attendance.Record) string { return r.EmployeeName },
	"intime":       func(r attendance.Record) string { return r.ClockIn },
	"outtime":      func(r attendance.Record) string { return r.ClockOut },
	"status":       func(r attendance.Record) string { return r.Status },
	"workinghours": func(r attendance.Record) string { return r.WorkingHours },
}

type uploader struct {
	sheet  smartsheet.Client
	loc    *time.Location
	logger *zap.Logger
	sleep  func(time.Duration)
}

func newUploader(sheet smartsheet.Client, loc *time.Location, logger *zap.Logger) *uploader {
	return &uploader{
		sheet:  sheet,
		loc:    loc,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// upload appends the records in fixed-size chunks. Chunks already written
// stay committed when a later chunk fails; the error propagates and the
// destination is left partially updated.
func (u *uploader) upload(ctx context.Context, columns []smartsheet.Column, records []attendance.Record) error {
	writable := writableColumns(columns)

	for start := 0; start < len(records); start += uploadChunkSize {
		if start > 0 {
			u.sleep(uploadChunkPause)
		}

		end := min(start+uploadChunkSize, len(records))
		rows := make([]smartsheet.NewRow, 0, end-start)
		for _, rec := range records[start:end] {
			rows = append(rows, u.buildRow(writable, rec))
		}

		if err := u.sheet.AddRows(ctx, rows); err != nil {
			return fmt.Errorf("append chunk at offset %d: %w", start, err)
		}
		u.logger.Debug("chunk uploaded", zap.Int("offset", start), zap.Int("size", len(rows)))
	}
	return nil
}

// writableColumns drops formula-derived columns; writing to one is invalid.
func writableColumns(columns []smartsheet.Column) []smartsheet.Column {
	writable := make([]smartsheet.Column, 0, len(columns))
	for _, col := range columns {
		if !col.IsFormula() {
			writable = append(writable, col)
		}
	}
	return writable
}

func (u *uploader) buildRow(columns []smartsheet.Column, rec attendance.Record) smartsheet.NewRow {
	cells := make([]smartsheet.Cell, 0, len(columns))
	for _, col := range columns {
		title := normalizeTitle(col.Title)

		var value string
		if title == columnDate {
			value = dates.FormatDisplay(rec.Date, u.loc)
		} else if selector, ok := columnBindings[title]; ok {
			value = selector(rec)
		}

		cells = append(cells, smartsheet.Cell{ColumnID: col.ID, Value: value})
	}
	return smartsheet.NewRow{ToBottom: true, Cells: cells}
}

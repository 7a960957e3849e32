package export

import (
	"context"
	"fmt"
	"time"

	"attendance-sync/internal/dates"
	"attendance-sync/internal/features/attendance"

	"github.com/xuri/excelize/v2"
)

// Columns in the generated workbook, in order.
var workbookColumns = []string{"EmpId", "EmpName", "Date", "In Time", "Out Time", "Status", "Working Hours"}

type Service interface {
	// BuildWorkbook renders the source records for the range into an .xlsx
	// and returns the bytes plus a suggested filename.
	BuildWorkbook(ctx context.Context, start, end string) ([]byte, string, error)
}

type ServiceImpl struct {
	Source attendance.Repository
	loc    *time.Location
}

func NewService(source attendance.Repository, loc *time.Location) Service {
	return &ServiceImpl{
		Source: source,
		loc:    loc,
	}
}

func (s *ServiceImpl) BuildWorkbook(ctx context.Context, start, end string) ([]byte, string, error) {
	records, err := s.Source.FetchRange(ctx, start, end)
	if err != nil {
		return nil, "", fmt.Errorf("fetch export range: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range workbookColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, rec := range records {
		values := []string{
			rec.EmployeeID,
			rec.EmployeeName,
			dates.FormatDisplay(rec.Date, s.loc),
			rec.ClockIn,
			rec.ClockOut,
			rec.Status,
			rec.WorkingHours,
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range workbookColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", start, end)
	return buffer.Bytes(), filename, nil
}

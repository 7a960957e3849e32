package smartsheet

// Column describes one destination sheet column. Columns carrying a formula
// are computed by the sheet itself and must never be written to.
type Column struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Formula string `json:"formula,omitempty"`
}

// IsFormula reports whether the column value is derived by the sheet.
func (c Column) IsFormula() bool {
	return c.Formula != ""
}

// Cell is a single column-keyed value within a row.
type Cell struct {
	ColumnID int64 `json:"columnId"`
	Value    any   `json:"value"`
}

// Row is a destination row snapshot with its service-assigned identifier.
type Row struct {
	ID    int64  `json:"id"`
	Cells []Cell `json:"cells"`
}

// CellValue returns the cell value for the given column, if present.
func (r Row) CellValue(columnID int64) (any, bool) {
	for _, c := range r.Cells {
		if c.ColumnID == columnID {
			if c.Value == nil {
				return nil, false
			}
			return c.Value, true
		}
	}
	return nil, false
}

// Sheet is the full destination snapshot, fetched once per sync.
type Sheet struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewRow is an append payload; row identity is assigned by the service.
type NewRow struct {
	ToBottom bool   `json:"toBottom"`
	Cells    []Cell `json:"cells"`
}

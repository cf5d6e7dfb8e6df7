package models

// ColumnType is the inferred type of a column.
type ColumnType string

const (
	ColumnNumeric ColumnType = "numeric"
	ColumnText    ColumnType = "text"
	ColumnDate    ColumnType = "date"
)

// ColumnClassification tags one column of a grid.
type ColumnClassification struct {
	// Index is the 0-based column offset within the grid.
	Index int `json:"index"`
	// Header is the stringified header label from row 0.
	Header string `json:"header"`
	// Type is the inferred column type.
	Type ColumnType `json:"type"`
}

// AnalysisReport is the whole-range column analysis of a selection.
type AnalysisReport struct {
	// BookName is the workbook file name (no path), when known.
	BookName string `json:"book_name,omitempty"`
	// Address is the analysed range.
	Address string `json:"address"`
	// HasHeaders is the header heuristic's verdict.
	HasHeaders bool `json:"has_headers"`
	// DataRows is the number of rows below the header row.
	DataRows int `json:"data_rows"`
	// Columns holds one entry per non-empty column.
	Columns []ColumnClassification `json:"columns"`
}

package models

// SelectionSnapshot is one read of the active selection. Producers build it
// once per turn and nobody mutates it afterwards.
type SelectionSnapshot struct {
	// Address is the sheet-qualified A1 address (e.g. Sheet1!A1:C4).
	Address string `json:"address"`
	// Range is the parsed form of Address.
	Range Range `json:"range"`
	// Values is the rectangular grid of cells, rows by columns.
	Values [][]any `json:"values"`
	// RowCount is the number of rows in Values.
	RowCount int `json:"row_count"`
	// ColumnCount is the number of columns in Values.
	ColumnCount int `json:"column_count"`
	// HasHeaders is the header heuristic's verdict for row 0.
	HasHeaders bool `json:"has_headers"`
}

// NewSelectionSnapshot builds a snapshot and pads ragged rows with nil so the
// grid is rectangular.
func NewSelectionSnapshot(address string, r Range, values [][]any, hasHeaders bool) *SelectionSnapshot {
	cols := 0
	for _, row := range values {
		if len(row) > cols {
			cols = len(row)
		}
	}
	grid := make([][]any, len(values))
	for i, row := range values {
		grid[i] = make([]any, cols)
		copy(grid[i], row)
	}
	return &SelectionSnapshot{
		Address:     address,
		Range:       r,
		Values:      grid,
		RowCount:    len(grid),
		ColumnCount: cols,
		HasHeaders:  hasHeaders,
	}
}

// IsEmpty reports whether the snapshot is nil or holds no cells.
func (s *SelectionSnapshot) IsEmpty() bool {
	return s == nil || s.RowCount == 0 || s.ColumnCount == 0
}

// HeaderRow returns row 0, or nil for an empty snapshot.
func (s *SelectionSnapshot) HeaderRow() []any {
	if s.IsEmpty() {
		return nil
	}
	return s.Values[0]
}

// Column returns the cells of column col from row fromRow downwards.
func (s *SelectionSnapshot) Column(col, fromRow int) []any {
	if s.IsEmpty() || col < 0 || col >= s.ColumnCount {
		return nil
	}
	var cells []any
	for r := fromRow; r < s.RowCount; r++ {
		cells = append(cells, s.Values[r][col])
	}
	return cells
}

// HasDataRows reports whether the snapshot has a header row plus at least
// one data row, the minimum for column-indexed actions.
func (s *SelectionSnapshot) HasDataRows() bool {
	return !s.IsEmpty() && s.RowCount >= 2
}

package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses an A1 reference such as 'Sheet 1'!$A$1:$D$10,
// Sheet1!A1:D10, A1:D10 or A1. References without a sheet use
// defaultSheet.
func ParseRange(ref, defaultSheet string) (models.Range, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Range{}, fmt.Errorf("empty range reference")
	}

	sheet := defaultSheet
	rangeStr := ref
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.ReplaceAll(strings.Trim(ref[:idx], "'"), "''", "'")
		rangeStr = ref[idx+1:]
	}

	area, err := parseRangeToArea(rangeStr)
	if err != nil {
		return models.Range{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	area.Sheet = sheet
	return area, nil
}

// parseRangeToArea parses a range string like $A$1:$D$10 or A1.
func parseRangeToArea(rangeStr string) (models.Range, error) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return models.Range{}, fmt.Errorf("too many range separators")
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Range{}, err
	}
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return models.Range{}, err
		}
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return models.Range{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, nil
}

// CellName renders 1-based coordinates as an A1 cell name. Out-of-range
// coordinates render as an empty string.
func CellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return name
}

// FormatRange renders r as a sheet-qualified A1 reference. Absolute
// references carry $ markers, which chart series require.
func FormatRange(r models.Range, absolute bool) string {
	start, _ := excelize.CoordinatesToCellName(r.C1, r.R1, absolute)
	end, _ := excelize.CoordinatesToCellName(r.C2, r.R2, absolute)
	ref := start
	if start != end {
		ref = start + ":" + end
	}
	if r.Sheet == "" {
		return ref
	}
	return QuoteSheet(r.Sheet) + "!" + ref
}

// QuoteSheet wraps a sheet name in single quotes when it contains
// characters that are not valid in a bare reference.
func QuoteSheet(name string) string {
	if strings.ContainsAny(name, " -+()&,;'!") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}

// RowBelow returns the 1-based row directly under r.
func RowBelow(r models.Range) int {
	return r.R1 + r.Rows()
}

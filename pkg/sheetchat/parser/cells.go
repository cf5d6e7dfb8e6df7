package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/xuri/excelize/v2"
)

// ReadGrid reads the cells of r into a rectangular grid. Empty cells become
// nil, numbers float64, booleans bool and everything else string.
func ReadGrid(f *excelize.File, r models.Range) ([][]any, error) {
	grid := make([][]any, 0, r.Rows())
	for row := r.R1; row <= r.R2; row++ {
		cells := make([]any, 0, r.Cols())
		for col := r.C1; col <= r.C2; col++ {
			value, err := ReadCell(f, r.Sheet, CellName(col, row))
			if err != nil {
				return nil, err
			}
			cells = append(cells, value)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// ReadCell reads a single cell as a typed value.
func ReadCell(f *excelize.File, sheet, cell string) (any, error) {
	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return nil, err
	}
	return parseValue(raw, cellType), nil
}

// parseValue converts raw cell text into a typed value.
// Shared and inline strings stay strings even when they look numeric.
func parseValue(s string, cellType excelize.CellType) any {
	if s == "" {
		return nil
	}
	switch cellType {
	case excelize.CellTypeBool:
		return s == "1" || strings.EqualFold(s, "true")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeDate:
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

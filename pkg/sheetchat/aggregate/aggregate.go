// Package aggregate sums spreadsheet cells with one coercion rule: numbers
// count as-is, strings count when they parse as plain decimals, and
// everything else contributes nothing.
package aggregate

import "github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"

// SumCells adds up every cell that coerces to a number.
func SumCells(cells []any) float64 {
	var total float64
	for _, c := range cells {
		if n, ok := parser.ToNumber(c); ok {
			total += n
		}
	}
	return total
}

// SumGrid adds up every coercible cell of a grid.
func SumGrid(grid [][]any) float64 {
	var total float64
	for _, row := range grid {
		total += SumCells(row)
	}
	return total
}

// SumColumn adds up column col from row fromRow downwards. Rows shorter
// than col are skipped.
func SumColumn(grid [][]any, col, fromRow int) float64 {
	var total float64
	for r := fromRow; r < len(grid); r++ {
		if col < 0 || col >= len(grid[r]) {
			continue
		}
		if n, ok := parser.ToNumber(grid[r][col]); ok {
			total += n
		}
	}
	return total
}

// SumColumns returns one total per column, each taken from row fromRow
// downwards. The result is as wide as the widest row.
func SumColumns(grid [][]any, fromRow int) []float64 {
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	totals := make([]float64, width)
	for col := range totals {
		totals[col] = SumColumn(grid, col, fromRow)
	}
	return totals
}

// Package parser reads cell grids and A1 references out of workbooks and
// coerces raw cell text into typed values.
package parser

import "github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"

// Default cell metrics in pixels at 96 DPI for a sheet with untouched
// column widths and row heights.
const (
	DefaultColumnWidthPixels = 64
	DefaultRowHeightPixels   = 20
)

// RegionToPixels converts a cell region into a width and height in pixels
// using the default cell metrics.
func RegionToPixels(r models.Range) (width, height uint) {
	return uint(r.Cols() * DefaultColumnWidthPixels), uint(r.Rows() * DefaultRowHeightPixels)
}

package executor

import (
	"context"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

// Spreadsheet is the access port the executor drives. Mutations are only
// guaranteed visible to reads after Sync.
type Spreadsheet interface {
	// Selection reads the active selection.
	Selection(ctx context.Context) (*models.SelectionSnapshot, error)
	// ReadCell reads one cell.
	ReadCell(ctx context.Context, sheet, cell string) (any, error)
	// WriteCell writes a literal value, applying numberFormat when non-empty.
	WriteCell(ctx context.Context, sheet, cell string, value any, numberFormat string) error
	// WriteFormula writes a formula; formula carries its leading =.
	WriteFormula(ctx context.Context, sheet, cell, formula string) error
	// WriteValues writes a grid with its top-left corner at anchor.
	WriteValues(ctx context.Context, sheet, anchor string, values [][]any) error
	// FormatTable formats r as a plain table.
	FormatTable(ctx context.Context, r models.Range) error
	// SetBold makes the cells of r bold.
	SetBold(ctx context.Context, r models.Range) error
	// ListWorksheets returns sheet names in workbook order.
	ListWorksheets(ctx context.Context) ([]string, error)
	// CreateWorksheet adds a sheet named name and returns its name.
	CreateWorksheet(ctx context.Context, name string) (string, error)
	// InsertWorksheet adds an unnamed sheet at position and returns the
	// name it was given.
	InsertWorksheet(ctx context.Context, position int) (string, error)
	// ActivateWorksheet makes name the active sheet.
	ActivateWorksheet(ctx context.Context, name string) error
	// CreateChart adds a chart.
	CreateChart(ctx context.Context, spec models.ChartSpec) error
	// CreatePivot adds a pivot table.
	CreatePivot(ctx context.Context, spec models.PivotSpec) error
	// Sync flushes queued mutations.
	Sync(ctx context.Context) error
}

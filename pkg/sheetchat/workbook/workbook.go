// Package workbook implements the spreadsheet port on top of an xlsx file.
//
// All mutations land in the in-memory excelize model immediately, so reads
// see them at once. Sync writes the model to the output path.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/infer"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"
	"github.com/xuri/excelize/v2"
)

// Option configures a Workbook.
type Option func(*Workbook)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(w *Workbook) { w.logger = l }
}

// WithOutput sets the path Sync saves to. It defaults to the path the
// workbook was opened from.
func WithOutput(path string) Option {
	return func(w *Workbook) { w.output = path }
}

// WithSelection fixes the selection to r instead of detecting it.
func WithSelection(r models.Range) Option {
	return func(w *Workbook) { w.selection = r }
}

// Workbook is an xlsx-backed spreadsheet.
type Workbook struct {
	file      *excelize.File
	output    string
	selection models.Range
	logger    *slog.Logger

	// numFmtStyles caches style IDs by number format.
	numFmtStyles map[string]int
	boldStyle    int
}

// Open opens the workbook at path.
func Open(path string, opts ...Option) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return New(f, path, opts...), nil
}

// New wraps an already open file. An empty output path makes Sync a no-op.
func New(f *excelize.File, output string, opts ...Option) *Workbook {
	w := &Workbook{
		file:         f,
		output:       output,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		numFmtStyles: make(map[string]int),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Name returns the base name of the file the workbook was opened from.
func (w *Workbook) Name() string {
	if w.file.Path == "" {
		return ""
	}
	return filepath.Base(w.file.Path)
}

// SetSelection parses ref against the active sheet and makes it the
// selection.
func (w *Workbook) SetSelection(ref string) error {
	r, err := parser.ParseRange(ref, w.activeSheet())
	if err != nil {
		return err
	}
	if idx, err := w.file.GetSheetIndex(r.Sheet); err != nil || idx == -1 {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, r.Sheet)
	}
	w.selection = r
	return nil
}

// Selection reads the selection. Without an explicit selection the table
// region of the active sheet is used; a sheet with no table yields nil.
func (w *Workbook) Selection(ctx context.Context) (*models.SelectionSnapshot, error) {
	r := w.selection
	if r.IsZero() {
		sheet := w.activeSheet()
		detected, ok, err := parser.DetectTable(w.file, sheet, parser.DefaultTableParams())
		if err != nil {
			return nil, err
		}
		if !ok {
			w.logger.DebugContext(ctx, "no table found on active sheet", "sheet", sheet)
			return nil, nil
		}
		r = detected
	}

	grid, err := parser.ReadGrid(w.file, r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", parser.FormatRange(r, false), err)
	}
	return models.NewSelectionSnapshot(parser.FormatRange(r, false), r, grid, infer.DetectHeaders(grid)), nil
}

// ReadCell reads one typed cell value.
func (w *Workbook) ReadCell(ctx context.Context, sheet, cell string) (any, error) {
	return parser.ReadCell(w.file, sheet, cell)
}

// WriteCell writes a literal value and applies numberFormat when non-empty.
func (w *Workbook) WriteCell(ctx context.Context, sheet, cell string, value any, numberFormat string) error {
	if err := w.file.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	if numberFormat == "" {
		return nil
	}
	style, err := w.numberFormatStyle(numberFormat)
	if err != nil {
		return NewOperationError(sheet, "style", err)
	}
	return w.file.SetCellStyle(sheet, cell, cell, style)
}

// WriteFormula writes a formula cell.
func (w *Workbook) WriteFormula(ctx context.Context, sheet, cell, formula string) error {
	return w.file.SetCellFormula(sheet, cell, formula)
}

// WriteValues writes values row by row with the top-left corner at anchor.
func (w *Workbook) WriteValues(ctx context.Context, sheet, anchor string, values [][]any) error {
	col, startRow, err := excelize.CellNameToCoordinates(anchor)
	if err != nil {
		return err
	}
	for i, row := range values {
		cells := row
		if err := w.file.SetSheetRow(sheet, parser.CellName(col, startRow+i), &cells); err != nil {
			return err
		}
	}
	return nil
}

// FormatTable formats r as a table with the default style.
func (w *Workbook) FormatTable(ctx context.Context, r models.Range) error {
	ref := r
	ref.Sheet = ""
	err := w.file.AddTable(r.Sheet, &excelize.Table{
		Range:     parser.FormatRange(ref, false),
		StyleName: "TableStyleMedium2",
	})
	if err != nil {
		return NewOperationError(r.Sheet, "table", err)
	}
	return nil
}

// SetBold makes the cells of r bold.
func (w *Workbook) SetBold(ctx context.Context, r models.Range) error {
	if w.boldStyle == 0 {
		style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return NewOperationError(r.Sheet, "style", err)
		}
		w.boldStyle = style
	}
	return w.file.SetCellStyle(r.Sheet, parser.CellName(r.C1, r.R1), parser.CellName(r.C2, r.R2), w.boldStyle)
}

// ListWorksheets returns sheet names in workbook order.
func (w *Workbook) ListWorksheets(ctx context.Context) ([]string, error) {
	return w.file.GetSheetList(), nil
}

// CreateWorksheet adds a sheet named name. It fails if the name is taken.
func (w *Workbook) CreateWorksheet(ctx context.Context, name string) (string, error) {
	if idx, err := w.file.GetSheetIndex(name); err != nil {
		return "", NewOperationError(name, "sheet", err)
	} else if idx != -1 {
		return "", NewOperationError(name, "sheet", fmt.Errorf("sheet already exists"))
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return "", NewOperationError(name, "sheet", err)
	}
	return name, nil
}

// InsertWorksheet adds a sheet with the first free SheetN name. excelize
// has no positional insert, so the sheet is appended and position is only
// logged.
func (w *Workbook) InsertWorksheet(ctx context.Context, position int) (string, error) {
	var name string
	for n := len(w.file.GetSheetList()) + 1; ; n++ {
		name = fmt.Sprintf("Sheet%d", n)
		if idx, _ := w.file.GetSheetIndex(name); idx == -1 {
			break
		}
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return "", NewOperationError(name, "sheet", err)
	}
	w.logger.DebugContext(ctx, "inserted worksheet", "sheet", name, "requested_position", position)
	return name, nil
}

// ActivateWorksheet makes name the active sheet.
func (w *Workbook) ActivateWorksheet(ctx context.Context, name string) error {
	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	w.file.SetActiveSheet(idx)
	return nil
}

// Sync saves the workbook to its output path.
func (w *Workbook) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.output == "" {
		return nil
	}
	return w.file.SaveAs(w.output)
}

func (w *Workbook) activeSheet() string {
	return w.file.GetSheetName(w.file.GetActiveSheetIndex())
}

func (w *Workbook) numberFormatStyle(numberFormat string) (int, error) {
	if style, ok := w.numFmtStyles[numberFormat]; ok {
		return style, nil
	}
	style, err := w.file.NewStyle(&excelize.Style{CustomNumFmt: &numberFormat})
	if err != nil {
		return 0, err
	}
	w.numFmtStyles[numberFormat] = style
	return style, nil
}

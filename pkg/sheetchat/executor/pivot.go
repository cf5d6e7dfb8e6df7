package executor

import (
	"context"
	"fmt"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/infer"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/resolve"
)

const (
	maxAutoRowFields   = 2
	maxAutoValueFields = 3
)

// PivotFields are caller-supplied pivot options. Zero value means "pick
// fields automatically and use the default destination sheet".
type PivotFields struct {
	DestSheet string
	Rows      []string
	Columns   []string
	Values    []string
}

// IsZero reports whether no field or destination was supplied.
func (p PivotFields) IsZero() bool {
	return p.DestSheet == "" && len(p.Rows) == 0 && len(p.Columns) == 0 && len(p.Values) == 0
}

// CreatePivotTable builds a pivot summary of the selection on a destination
// sheet. When the pivot cannot be built the raw values are copied to the
// destination instead and formatted as a table; only if that also fails
// does the action fail.
func (e *Executor) CreatePivotTable(ctx context.Context, snap *models.SelectionSnapshot, fields PivotFields) (string, error) {
	if snap.IsEmpty() {
		return "", ErrNoSelection
	}
	if !snap.HasDataRows() {
		return "", ErrInsufficientRows
	}

	destName := fields.DestSheet
	if destName == "" {
		destName = e.pivotSheet
	}
	dest, err := e.EnsureWorksheet(ctx, destName)
	if err != nil {
		return "", fmt.Errorf("destination sheet: %w", err)
	}

	spec := e.pivotSpec(ctx, snap, fields)
	spec.DestSheet = dest

	strategies := []strategy{
		{
			name: "pivot",
			run: func(ctx context.Context) error {
				if err := e.sheet.CreatePivot(ctx, spec); err != nil {
					return err
				}
				return e.sheet.Sync(ctx)
			},
		},
		{
			name: "copy-values",
			run: func(ctx context.Context) error {
				return e.copyAsTable(ctx, dest, snap)
			},
		},
	}

	used, err := e.runCascade(ctx, "pivot", strategies)
	if err != nil {
		return "", err
	}
	if used == "copy-values" {
		return fmt.Sprintf("Could not build a pivot table, so the data from %s was copied to %s as a table.", snap.Address, dest), nil
	}
	return fmt.Sprintf("Pivot table created on %s.", dest), nil
}

// CreateSamplePivot tries CreatePivotTable with automatic fields and falls
// back to a plain summary sheet holding a bold title row and the raw values.
func (e *Executor) CreateSamplePivot(ctx context.Context, snap *models.SelectionSnapshot) (string, error) {
	msg, err := e.CreatePivotTable(ctx, snap, PivotFields{})
	if err == nil {
		return msg, nil
	}
	e.logger.WarnContext(ctx, "pivot cascade failed, trying simple summary", "error", err)

	title := "Summary of " + snap.Address
	var sheet string
	fill := func(ctx context.Context, created string) error {
		sheet = created
		titleCell := models.Range{Sheet: created, R1: 1, C1: 1, R2: 1, C2: 1}
		if err := e.sheet.WriteCell(ctx, created, "A1", title, ""); err != nil {
			return err
		}
		if err := e.sheet.SetBold(ctx, titleCell); err != nil {
			return err
		}
		if err := e.sheet.WriteValues(ctx, created, "A2", snap.Values); err != nil {
			return err
		}
		return e.sheet.Sync(ctx)
	}

	strategies := []strategy{
		{
			name: "summary-sheet",
			run: func(ctx context.Context) error {
				created, err := e.sheet.CreateWorksheet(ctx, e.uniqueSheetName(e.summarySheet))
				if err != nil {
					return err
				}
				return fill(ctx, created)
			},
		},
		{
			name: "insert-first",
			run: func(ctx context.Context) error {
				created, err := e.sheet.InsertWorksheet(ctx, 0)
				if err != nil {
					return err
				}
				return fill(ctx, created)
			},
		},
	}

	if _, err := e.runCascade(ctx, "summary", strategies); err != nil {
		return "", err
	}
	if err := e.sheet.ActivateWorksheet(ctx, sheet); err != nil {
		e.logger.WarnContext(ctx, "failed to activate worksheet", "sheet", sheet, "error", err)
	}
	return fmt.Sprintf("Created a summary of %s on %s.", snap.Address, sheet), nil
}

// pivotSpec resolves caller-supplied fields against the header row, or
// picks text columns as rows and numeric columns as values when none were
// supplied.
func (e *Executor) pivotSpec(ctx context.Context, snap *models.SelectionSnapshot, fields PivotFields) models.PivotSpec {
	spec := models.PivotSpec{Source: snap.Range}
	header := snap.HeaderRow()

	if len(fields.Rows) > 0 || len(fields.Columns) > 0 || len(fields.Values) > 0 {
		spec.Rows = e.resolveFields(ctx, header, fields.Rows)
		spec.Columns = e.resolveFields(ctx, header, fields.Columns)
		spec.Values = e.resolveFields(ctx, header, fields.Values)
		return spec
	}

	for _, c := range infer.ClassifyColumns(snap.Values) {
		if c.Header == "" {
			continue
		}
		switch {
		case c.Type == models.ColumnText && len(spec.Rows) < maxAutoRowFields:
			spec.Rows = append(spec.Rows, c.Header)
		case c.Type == models.ColumnNumeric && len(spec.Values) < maxAutoValueFields:
			spec.Values = append(spec.Values, c.Header)
		}
	}
	return spec
}

func (e *Executor) resolveFields(ctx context.Context, header []any, names []string) []string {
	resolved, missing := resolve.Columns(header, names)
	for _, name := range missing {
		e.logger.DebugContext(ctx, "skipping unresolved pivot field", "field", name)
	}
	out := make([]string, 0, len(resolved))
	for _, r := range resolved {
		out = append(out, r.Header)
	}
	return out
}

// copyAsTable copies the selection's values verbatim to sheet at A1 and
// formats the block as a table.
func (e *Executor) copyAsTable(ctx context.Context, sheet string, snap *models.SelectionSnapshot) error {
	if err := e.sheet.WriteValues(ctx, sheet, "A1", snap.Values); err != nil {
		return err
	}
	table := models.Range{Sheet: sheet, R1: 1, C1: 1, R2: snap.RowCount, C2: snap.ColumnCount}
	if err := e.sheet.FormatTable(ctx, table); err != nil {
		return err
	}
	if err := e.sheet.Sync(ctx); err != nil {
		return err
	}
	e.logger.DebugContext(ctx, "copied selection as table", "sheet", sheet, "range", parser.FormatRange(table, false))
	return nil
}

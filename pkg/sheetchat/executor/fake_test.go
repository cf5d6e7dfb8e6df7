package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

var errInjected = errors.New("injected failure")

// fakeSheet is an in-memory Spreadsheet that records every call. Entries in
// fail are matched against "Method:arg" first and then "Method".
type fakeSheet struct {
	calls    []string
	fail     map[string]error
	sheets   []string
	cells    map[string]any
	formats  map[string]string
	formulas map[string]string
	grids    map[string][][]any
	tables   []models.Range
	bold     []models.Range
	charts   []models.ChartSpec
	pivots   []models.PivotSpec
	active   string
}

func newFakeSheet(sheets ...string) *fakeSheet {
	if len(sheets) == 0 {
		sheets = []string{"Sheet1"}
	}
	return &fakeSheet{
		fail:     map[string]error{},
		sheets:   sheets,
		cells:    map[string]any{},
		formats:  map[string]string{},
		formulas: map[string]string{},
		grids:    map[string][][]any{},
	}
}

func (f *fakeSheet) record(method, arg string) error {
	call := method
	if arg != "" {
		call = method + ":" + arg
	}
	f.calls = append(f.calls, call)
	if err, ok := f.fail[call]; ok {
		return err
	}
	return f.fail[method]
}

func key(sheet, cell string) string { return sheet + "!" + cell }

func (f *fakeSheet) Selection(ctx context.Context) (*models.SelectionSnapshot, error) {
	return nil, f.record("Selection", "")
}

func (f *fakeSheet) ReadCell(ctx context.Context, sheet, cell string) (any, error) {
	if err := f.record("ReadCell", key(sheet, cell)); err != nil {
		return nil, err
	}
	return f.cells[key(sheet, cell)], nil
}

func (f *fakeSheet) WriteCell(ctx context.Context, sheet, cell string, value any, numberFormat string) error {
	if err := f.record("WriteCell", key(sheet, cell)); err != nil {
		return err
	}
	f.cells[key(sheet, cell)] = value
	f.formats[key(sheet, cell)] = numberFormat
	return nil
}

func (f *fakeSheet) WriteFormula(ctx context.Context, sheet, cell, formula string) error {
	if err := f.record("WriteFormula", key(sheet, cell)); err != nil {
		return err
	}
	f.formulas[key(sheet, cell)] = formula
	return nil
}

func (f *fakeSheet) WriteValues(ctx context.Context, sheet, anchor string, values [][]any) error {
	if err := f.record("WriteValues", key(sheet, anchor)); err != nil {
		return err
	}
	grid := make([][]any, len(values))
	for i, row := range values {
		grid[i] = append([]any(nil), row...)
	}
	f.grids[key(sheet, anchor)] = grid
	return nil
}

func (f *fakeSheet) FormatTable(ctx context.Context, r models.Range) error {
	if err := f.record("FormatTable", r.Sheet); err != nil {
		return err
	}
	f.tables = append(f.tables, r)
	return nil
}

func (f *fakeSheet) SetBold(ctx context.Context, r models.Range) error {
	if err := f.record("SetBold", r.Sheet); err != nil {
		return err
	}
	f.bold = append(f.bold, r)
	return nil
}

func (f *fakeSheet) ListWorksheets(ctx context.Context) ([]string, error) {
	if err := f.record("ListWorksheets", ""); err != nil {
		return nil, err
	}
	return append([]string(nil), f.sheets...), nil
}

func (f *fakeSheet) CreateWorksheet(ctx context.Context, name string) (string, error) {
	if err := f.record("CreateWorksheet", name); err != nil {
		return "", err
	}
	for _, s := range f.sheets {
		if s == name {
			return "", fmt.Errorf("sheet %q already exists", name)
		}
	}
	f.sheets = append(f.sheets, name)
	return name, nil
}

func (f *fakeSheet) InsertWorksheet(ctx context.Context, position int) (string, error) {
	if err := f.record("InsertWorksheet", fmt.Sprint(position)); err != nil {
		return "", err
	}
	name := fmt.Sprintf("Sheet%d", len(f.sheets)+1)
	f.sheets = append(f.sheets[:position], append([]string{name}, f.sheets[position:]...)...)
	return name, nil
}

func (f *fakeSheet) ActivateWorksheet(ctx context.Context, name string) error {
	if err := f.record("ActivateWorksheet", name); err != nil {
		return err
	}
	f.active = name
	return nil
}

func (f *fakeSheet) CreateChart(ctx context.Context, spec models.ChartSpec) error {
	if err := f.record("CreateChart", string(spec.Kind)); err != nil {
		return err
	}
	f.charts = append(f.charts, spec)
	return nil
}

func (f *fakeSheet) CreatePivot(ctx context.Context, spec models.PivotSpec) error {
	if err := f.record("CreatePivot", spec.DestSheet); err != nil {
		return err
	}
	f.pivots = append(f.pivots, spec)
	return nil
}

func (f *fakeSheet) Sync(ctx context.Context) error {
	return f.record("Sync", "")
}

// callsOf returns the recorded calls whose method is one of methods.
func (f *fakeSheet) callsOf(methods ...string) []string {
	var out []string
	for _, c := range f.calls {
		for _, m := range methods {
			if c == m || len(c) > len(m) && c[:len(m)+1] == m+":" {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

package workbook

import (
	"context"
	"fmt"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/infer"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"
	"github.com/xuri/excelize/v2"
)

// pivotGap is the number of rows from the end of existing content (or the
// top of an empty sheet) to the first row of a new pivot.
const pivotGap = 3

// CreateChart adds a chart of spec.Source sized to fill spec.Anchor.
func (w *Workbook) CreateChart(ctx context.Context, spec models.ChartSpec) error {
	chartType, ok := parser.ChartTypeMap[spec.Kind]
	if !ok {
		return NewOperationError(spec.Anchor.Sheet, "chart", fmt.Errorf("unsupported chart kind %q", spec.Kind))
	}

	grid, err := parser.ReadGrid(w.file, spec.Source)
	if err != nil {
		return NewOperationError(spec.Source.Sheet, "chart", err)
	}

	width, height := parser.RegionToPixels(spec.Anchor)
	chart := &excelize.Chart{
		Type:      chartType,
		Series:    parser.ChartSeries(spec.Source, infer.DetectHeaders(grid)),
		Dimension: excelize.ChartDimension{Width: width, Height: height},
		Legend:    excelize.ChartLegend{Position: "bottom"},
	}
	if spec.Title != "" {
		chart.Title = []excelize.RichTextRun{{Text: spec.Title}}
	}

	sheet := spec.Anchor.Sheet
	if sheet == "" {
		sheet = spec.Source.Sheet
	}
	if err := w.file.AddChart(sheet, parser.CellName(spec.Anchor.C1, spec.Anchor.R1), chart); err != nil {
		return NewOperationError(sheet, "chart", err)
	}
	return nil
}

// CreatePivot adds a pivot table on spec.DestSheet. Every value field is
// summed. The destination sheet must exist.
func (w *Workbook) CreatePivot(ctx context.Context, spec models.PivotSpec) error {
	if len(spec.Values) == 0 {
		return NewOperationError(spec.DestSheet, "pivot", fmt.Errorf("no value fields"))
	}

	rows := pivotFields(spec.Rows)
	cols := pivotFields(spec.Columns)
	data := make([]excelize.PivotTableField, 0, len(spec.Values))
	for _, v := range spec.Values {
		data = append(data, excelize.PivotTableField{Data: v, Name: "Sum of " + v, Subtotal: "Sum"})
	}

	originRow, err := w.pivotOriginRow(spec.DestSheet)
	if err != nil {
		return NewOperationError(spec.DestSheet, "pivot", err)
	}
	// excelize needs a location block; Excel resizes it on refresh.
	location := models.Range{
		Sheet: spec.DestSheet,
		R1:    originRow, C1: 1,
		R2: originRow + spec.Source.Rows() + 1, C2: len(rows) + len(cols) + len(data) + 1,
	}

	opts := &excelize.PivotTableOptions{
		DataRange:       parser.FormatRange(spec.Source, false),
		PivotTableRange: parser.FormatRange(location, false),
		Rows:            rows,
		Columns:         cols,
		Data:            data,
		RowGrandTotals:  true,
		ColGrandTotals:  true,
		ShowRowHeaders:  true,
		ShowColHeaders:  true,
	}
	if err := w.file.AddPivotTable(opts); err != nil {
		return NewOperationError(spec.DestSheet, "pivot", err)
	}
	return nil
}

// pivotOriginRow returns the first row of a new pivot on sheet, below any
// pivots and cell values already there.
func (w *Workbook) pivotOriginRow(sheet string) (int, error) {
	origin := pivotGap

	pivots, err := w.file.GetPivotTables(sheet)
	if err != nil {
		return 0, err
	}
	for _, p := range pivots {
		r, err := parser.ParseRange(p.PivotTableRange, sheet)
		if err != nil {
			w.logger.Warn("unreadable pivot location", "sheet", sheet, "range", p.PivotTableRange, "error", err)
			continue
		}
		origin = max(origin, r.R2+pivotGap)
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return 0, err
	}
	if len(rows) > 0 {
		origin = max(origin, len(rows)+pivotGap)
	}
	return origin, nil
}

func pivotFields(names []string) []excelize.PivotTableField {
	fields := make([]excelize.PivotTableField, 0, len(names))
	for _, n := range names {
		fields = append(fields, excelize.PivotTableField{Data: n})
	}
	return fields
}

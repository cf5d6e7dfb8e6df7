package parser

import (
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/xuri/excelize/v2"
)

// ChartTypeMap maps chart kinds to excelize chart types.
var ChartTypeMap = map[models.ChartKind]excelize.ChartType{
	models.ChartClusteredColumn: excelize.Col,
	models.ChartClusteredBar:    excelize.Bar,
	models.ChartLine:            excelize.Line,
	models.ChartPie:             excelize.Pie,
	models.ChartXYScatter:       excelize.Scatter,
}

// ChartSeries builds one series per value column of src. With a header row
// the first column supplies categories and row 1 supplies series names.
// A single-column source plots that column alone.
func ChartSeries(src models.Range, hasHeaders bool) []excelize.ChartSeries {
	firstData := src.R1
	if hasHeaders && src.Rows() > 1 {
		firstData = src.R1 + 1
	}

	column := func(col int) models.Range {
		return models.Range{Sheet: src.Sheet, R1: firstData, C1: col, R2: src.R2, C2: col}
	}

	if src.Cols() == 1 {
		s := excelize.ChartSeries{Values: FormatRange(column(src.C1), true)}
		if firstData > src.R1 {
			s.Name = FormatRange(models.Range{Sheet: src.Sheet, R1: src.R1, C1: src.C1, R2: src.R1, C2: src.C1}, true)
		}
		return []excelize.ChartSeries{s}
	}

	categories := FormatRange(column(src.C1), true)
	series := make([]excelize.ChartSeries, 0, src.Cols()-1)
	for col := src.C1 + 1; col <= src.C2; col++ {
		s := excelize.ChartSeries{
			Categories: categories,
			Values:     FormatRange(column(col), true),
		}
		if firstData > src.R1 {
			s.Name = FormatRange(models.Range{Sheet: src.Sheet, R1: src.R1, C1: col, R2: src.R1, C2: col}, true)
		}
		series = append(series, s)
	}
	return series
}

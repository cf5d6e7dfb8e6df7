// Package infer guesses the shape of a cell grid: whether row 0 holds
// headers and what type each column carries.
//
// Two column classifiers live here on purpose. ClassifyColumns is the quick
// sampler used to pick default pivot fields; AnalyzeColumns looks at every
// data row and backs the analysis report. They use different sample sizes
// and thresholds and must not be merged.
package infer

import (
	"strings"

	"github.com/araddon/dateparse"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"
	"github.com/xuri/excelize/v2"
)

const (
	// quickSampleRows is how many rows below the header ClassifyColumns reads.
	quickSampleRows = 4
	// analysisThreshold is the share a type needs to win in AnalyzeColumns.
	analysisThreshold = 0.7
)

// DetectHeaders reports whether row 0 looks like a header row: it must hold
// some text, and no fewer text cells than row 1 holds numeric cells. This is
// a heuristic. Grids with fewer than two rows report false.
func DetectHeaders(grid [][]any) bool {
	if len(grid) < 2 {
		return false
	}

	textCount := 0
	for _, v := range grid[0] {
		if parser.IsText(v) {
			textCount++
		}
	}

	numericCount := 0
	for _, v := range grid[1] {
		if parser.IsNumeric(v) {
			numericCount++
		}
	}

	return textCount > 0 && textCount >= numericCount
}

// counts tallies the non-empty cells of one column.
type counts struct {
	numeric  int
	text     int
	date     int
	nonEmpty int
}

func countColumn(grid [][]any, col, from, to int) counts {
	var c counts
	for r := from; r < to && r < len(grid); r++ {
		if col >= len(grid[r]) {
			continue
		}
		v := grid[r][col]
		if models.IsEmpty(v) {
			continue
		}
		c.nonEmpty++
		switch {
		case parser.IsNumeric(v):
			c.numeric++
		case IsDate(v):
			c.date++
			c.text++
		case parser.IsText(v):
			c.text++
		}
	}
	return c
}

// ClassifyColumns tags each column from a sample of rows 1 through 4. A
// column is numeric when its numeric cells outnumber its text cells, text
// otherwise. Columns without any non-empty sampled cell are left out.
func ClassifyColumns(grid [][]any) []models.ColumnClassification {
	if len(grid) == 0 {
		return nil
	}

	var result []models.ColumnClassification
	for col := 0; col < width(grid); col++ {
		c := countColumn(grid, col, 1, 1+quickSampleRows)
		if c.nonEmpty == 0 {
			continue
		}
		colType := models.ColumnText
		if c.numeric > c.text {
			colType = models.ColumnNumeric
		}
		result = append(result, models.ColumnClassification{
			Index:  col,
			Header: headerLabel(grid, col, true),
			Type:   colType,
		})
	}
	return result
}

// AnalyzeColumns tags each column from all of its data rows. A column is
// numeric when more than 70% of its non-empty cells are numeric, date when
// more than 70% parse as dates, and text otherwise. Empty columns are left
// out.
func AnalyzeColumns(grid [][]any, hasHeaders bool) []models.ColumnClassification {
	if len(grid) == 0 {
		return nil
	}

	from := 0
	if hasHeaders {
		from = 1
	}

	var result []models.ColumnClassification
	for col := 0; col < width(grid); col++ {
		c := countColumn(grid, col, from, len(grid))
		if c.nonEmpty == 0 {
			continue
		}
		total := float64(c.nonEmpty)
		colType := models.ColumnText
		switch {
		case float64(c.numeric)/total > analysisThreshold:
			colType = models.ColumnNumeric
		case float64(c.date)/total > analysisThreshold:
			colType = models.ColumnDate
		}
		result = append(result, models.ColumnClassification{
			Index:  col,
			Header: headerLabel(grid, col, hasHeaders),
			Type:   colType,
		})
	}
	return result
}

// Analyze builds the whole-range analysis report for a selection.
func Analyze(snap *models.SelectionSnapshot) models.AnalysisReport {
	report := models.AnalysisReport{}
	if snap == nil {
		return report
	}
	report.Address = snap.Address
	report.HasHeaders = snap.HasHeaders
	report.DataRows = snap.RowCount
	if snap.HasHeaders && snap.RowCount > 0 {
		report.DataRows = snap.RowCount - 1
	}
	report.Columns = AnalyzeColumns(snap.Values, snap.HasHeaders)
	return report
}

// IsDate reports whether v is a string that parses as a date.
func IsDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if s == "" || parser.IsNumeric(s) {
		return false
	}
	_, err := dateparse.ParseAny(s)
	return err == nil
}

func headerLabel(grid [][]any, col int, hasHeaders bool) string {
	if hasHeaders && len(grid) > 0 && col < len(grid[0]) {
		if label := parser.Stringify(grid[0][col]); label != "" {
			return label
		}
	}
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return ""
	}
	return "Column " + name
}

func width(grid [][]any) int {
	w := 0
	for _, row := range grid {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

package infer

import (
	"testing"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

func TestDetectHeaders(t *testing.T) {
	tests := []struct {
		name     string
		grid     [][]any
		expected bool
	}{
		{"text over numbers", [][]any{{"Name", "Qty"}, {1.0, 2.0}}, true},
		{"all numbers", [][]any{{1.0, 2.0}, {3.0, 4.0}}, false},
		{"single row", [][]any{{"Name", "Qty"}}, false},
		{"empty", nil, false},
		{"text over text", [][]any{{"Name", "City"}, {"Ann", "Oslo"}}, true},
		{"numeric strings are not text", [][]any{{"1", "2"}, {3.0, 4.0}}, false},
	}

	for _, tt := range tests {
		if result := DetectHeaders(tt.grid); result != tt.expected {
			t.Errorf("%s: DetectHeaders = %v, expected %v", tt.name, result, tt.expected)
		}
	}
}

func TestClassifyColumns(t *testing.T) {
	grid := [][]any{
		{"Region", "Amount", "Blank", "Mixed"},
		{"North", 10.0, nil, "x"},
		{"South", "20", nil, 1.0},
		{"East", 30.0, nil, "y"},
		{"West", 40.0, nil, 2.0},
		{"Ignored", "not sampled", nil, 3.0},
	}

	result := ClassifyColumns(grid)
	if len(result) != 3 {
		t.Fatalf("Expected 3 classified columns, got %d: %+v", len(result), result)
	}

	expected := []models.ColumnClassification{
		{Index: 0, Header: "Region", Type: models.ColumnText},
		{Index: 1, Header: "Amount", Type: models.ColumnNumeric},
		{Index: 3, Header: "Mixed", Type: models.ColumnText},
	}
	for i, want := range expected {
		if result[i] != want {
			t.Errorf("column %d = %+v, expected %+v", i, result[i], want)
		}
	}
}

func TestAnalyzeColumns(t *testing.T) {
	grid := [][]any{
		{"Date", "Amount", "Notes", "Mostly"},
		{"2024-01-15", 10.0, "apples", 1.0},
		{"2024-02-15", 20.0, "pears", 2.0},
		{"2024-03-15", 30.0, "plums", 3.0},
		{"2024-04-15", "n/a", nil, "x"},
	}

	result := AnalyzeColumns(grid, true)
	if len(result) != 4 {
		t.Fatalf("Expected 4 columns, got %d", len(result))
	}

	expected := map[string]models.ColumnType{
		"Date":   models.ColumnDate,
		"Amount": models.ColumnNumeric,
		"Notes":  models.ColumnText,
		"Mostly": models.ColumnNumeric,
	}
	for _, c := range result {
		if c.Type != expected[c.Header] {
			t.Errorf("%s: type %s, expected %s", c.Header, c.Type, expected[c.Header])
		}
	}
}

func TestAnalyzeColumns_ThresholdIsStrict(t *testing.T) {
	// 7 of 10 is exactly 0.7 and must not count as numeric.
	grid := [][]any{{"Value"}}
	for i := 0; i < 7; i++ {
		grid = append(grid, []any{float64(i)})
	}
	for i := 0; i < 3; i++ {
		grid = append(grid, []any{"word"})
	}

	result := AnalyzeColumns(grid, true)
	if len(result) != 1 || result[0].Type != models.ColumnText {
		t.Errorf("AnalyzeColumns = %+v, expected text", result)
	}
}

func TestAnalyzeColumns_NoHeaders(t *testing.T) {
	grid := [][]any{{1.0, "a"}, {2.0, "b"}}

	result := AnalyzeColumns(grid, false)
	if len(result) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(result))
	}
	if result[0].Header != "Column A" || result[0].Type != models.ColumnNumeric {
		t.Errorf("column 0 = %+v", result[0])
	}
}

func TestAnalyze(t *testing.T) {
	snap := models.NewSelectionSnapshot("Sheet1!A1:B3", models.Range{Sheet: "Sheet1", R1: 1, C1: 1, R2: 3, C2: 2},
		[][]any{{"Item", "Cost"}, {"Pen", 1.5}, {"Ink", 3.0}}, true)

	report := Analyze(snap)
	if report.Address != "Sheet1!A1:B3" || report.DataRows != 2 || len(report.Columns) != 2 {
		t.Errorf("Analyze = %+v", report)
	}
}

func TestIsDate(t *testing.T) {
	tests := []struct {
		input    any
		expected bool
	}{
		{"2024-01-15", true},
		{"hello", false},
		{"42", false},
		{42.0, false},
		{nil, false},
	}

	for _, tt := range tests {
		if result := IsDate(tt.input); result != tt.expected {
			t.Errorf("IsDate(%#v) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

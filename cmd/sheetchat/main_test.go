package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/executor"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/xuri/excelize/v2"
)

// writeLedger saves a workbook with a header row and three amounts.
func writeLedger(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Date", "Amount", "Notes"},
		{"2024-01-01", 10, "rent"},
		{"2024-01-02", 20, "food"},
		{"2024-01-03", 30, "fuel"},
	}
	for i, row := range rows {
		cells := row
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &cells); err != nil {
			t.Fatalf("Failed to seed row %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestChatCommand(t *testing.T) {
	input := writeLedger(t)
	out := filepath.Join(t.TempDir(), "out.xlsx")

	var stdout, stderr bytes.Buffer
	cmd := newChatCmd()
	cmd.SetArgs([]string{input, "--output", out, "-m", "sum the amount column", "--metrics"})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	if !strings.HasPrefix(stdout.String(), "assistant: Hi!") {
		t.Errorf("Expected the greeting first, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "assistant: Done! I wrote the column totals") {
		t.Errorf("Expected the column sum confirmation, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), `sheetchat_executor_actions_total{kind="column_sum",outcome="succeeded"} 1`) {
		t.Errorf("Expected the action metric, got %q", stderr.String())
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("Sheet1", "B5"); v != "60.00" {
		t.Errorf("B5 = %q, expected %q", v, "60.00")
	}
}

func TestAnalyzeCommand(t *testing.T) {
	input := writeLedger(t)

	var stdout bytes.Buffer
	cmd := newAnalyzeCmd()
	cmd.SetArgs([]string{input, "--range", "Sheet1!A1:C4"})
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var report models.AnalysisReport
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("Failed to parse output %q: %v", stdout.String(), err)
	}
	if report.BookName != "ledger.xlsx" {
		t.Errorf("BookName = %q, expected ledger.xlsx", report.BookName)
	}
	if report.DataRows != 3 {
		t.Errorf("DataRows = %d, expected 3", report.DataRows)
	}
	if len(report.Columns) != 3 || report.Columns[1].Type != models.ColumnNumeric {
		t.Errorf("Columns = %+v, expected Amount to be numeric", report.Columns)
	}
}

func TestPivotCommand(t *testing.T) {
	input := writeLedger(t)

	var stdout bytes.Buffer
	cmd := newPivotCmd()
	cmd.SetArgs([]string{input, "--rows", "notes", "--values", "amount", "--dest", "Report"})
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("pivot failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Report") {
		t.Errorf("Expected the destination in the output, got %q", stdout.String())
	}

	f, err := excelize.OpenFile(input)
	if err != nil {
		t.Fatalf("Failed to reopen input: %v", err)
	}
	defer f.Close()
	if idx, _ := f.GetSheetIndex("Report"); idx == -1 {
		t.Error("Expected a Report sheet")
	}
}

func TestWriteMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	executor.NewMetrics(reg)
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_total", Help: "test"}, []string{"kind"})
	reg.MustRegister(counter)
	counter.WithLabelValues("b").Add(2)
	counter.WithLabelValues("a").Inc()

	var buf bytes.Buffer
	if err := writeMetrics(reg, &buf); err != nil {
		t.Fatalf("writeMetrics failed: %v", err)
	}

	expected := "# HELP test_total test\n" +
		"# TYPE test_total counter\n" +
		"test_total{kind=\"a\"} 1\n" +
		"test_total{kind=\"b\"} 2\n"
	if buf.String() != expected {
		t.Errorf("writeMetrics = %q, expected %q", buf.String(), expected)
	}
}

func TestWriteMetrics_Gauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_open_books", Help: "test"})
	reg.MustRegister(gauge)
	gauge.Set(1.5)

	var buf bytes.Buffer
	if err := writeMetrics(reg, &buf); err != nil {
		t.Fatalf("writeMetrics failed: %v", err)
	}

	for _, line := range []string{"# TYPE test_open_books gauge", "test_open_books 1.5"} {
		if !strings.Contains(buf.String(), line) {
			t.Errorf("writeMetrics output %q does not contain %q", buf.String(), line)
		}
	}
}

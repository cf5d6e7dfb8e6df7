package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

func TestToJSON(t *testing.T) {
	report := models.AnalysisReport{
		Address:    "Sheet1!A1:B3",
		HasHeaders: true,
		DataRows:   2,
		Columns: []models.ColumnClassification{
			{Index: 1, Header: "Amount", Type: models.ColumnNumeric},
		},
	}

	compact, err := ToJSON(report, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	expected := `{"address":"Sheet1!A1:B3","has_headers":true,"data_rows":2,"columns":[{"index":1,"header":"Amount","type":"numeric"}]}`
	if string(compact) != expected {
		t.Errorf("ToJSON = %s, expected %s", compact, expected)
	}

	pretty, err := ToJSON(report, true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"address\"") {
		t.Errorf("Expected indented output, got %s", pretty)
	}
}

func TestWriteMessages(t *testing.T) {
	var buf bytes.Buffer
	msgs := []models.Message{
		{Role: models.RoleUser, Content: "sum the amount column"},
		{Role: models.RoleAssistant, Content: "line one\nline two"},
	}
	if err := WriteMessages(&buf, msgs); err != nil {
		t.Fatalf("WriteMessages failed: %v", err)
	}

	expected := "user: sum the amount column\nassistant: line one\n           line two\n"
	if buf.String() != expected {
		t.Errorf("WriteMessages = %q, expected %q", buf.String(), expected)
	}
}

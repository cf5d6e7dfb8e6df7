package parser

import (
	"testing"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		ref      string
		expected models.Range
	}{
		{"Sheet1!$A$1:$D$10", models.Range{Sheet: "Sheet1", R1: 1, C1: 1, R2: 10, C2: 4}},
		{"'My Sheet'!B2:C3", models.Range{Sheet: "My Sheet", R1: 2, C1: 2, R2: 3, C2: 3}},
		{"A1:C4", models.Range{Sheet: "Data", R1: 1, C1: 1, R2: 4, C2: 3}},
		{"C5", models.Range{Sheet: "Data", R1: 5, C1: 3, R2: 5, C2: 3}},
		{"D4:A1", models.Range{Sheet: "Data", R1: 1, C1: 1, R2: 4, C2: 4}},
	}

	for _, tt := range tests {
		result, err := ParseRange(tt.ref, "Data")
		if err != nil {
			t.Errorf("ParseRange(%q) returned error: %v", tt.ref, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ParseRange(%q) = %+v, expected %+v", tt.ref, result, tt.expected)
		}
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, ref := range []string{"", "Sheet1!", "A1:B2:C3", "hello"} {
		if _, err := ParseRange(ref, "Sheet1"); err == nil {
			t.Errorf("ParseRange(%q) expected error, got nil", ref)
		}
	}
}

func TestFormatRange(t *testing.T) {
	tests := []struct {
		r        models.Range
		absolute bool
		expected string
	}{
		{models.Range{Sheet: "Sheet1", R1: 1, C1: 1, R2: 4, C2: 3}, false, "Sheet1!A1:C4"},
		{models.Range{Sheet: "Sheet1", R1: 2, C1: 2, R2: 4, C2: 2}, true, "Sheet1!$B$2:$B$4"},
		{models.Range{Sheet: "My Sheet", R1: 1, C1: 1, R2: 1, C2: 1}, false, "'My Sheet'!A1"},
		{models.Range{R1: 1, C1: 1, R2: 2, C2: 2}, false, "A1:B2"},
	}

	for _, tt := range tests {
		if result := FormatRange(tt.r, tt.absolute); result != tt.expected {
			t.Errorf("FormatRange(%+v, %v) = %q, expected %q", tt.r, tt.absolute, result, tt.expected)
		}
	}
}

func TestRowBelow(t *testing.T) {
	r := models.Range{Sheet: "Sheet1", R1: 3, C1: 1, R2: 6, C2: 2}
	if got := RowBelow(r); got != 7 {
		t.Errorf("RowBelow = %d, expected 7", got)
	}
}

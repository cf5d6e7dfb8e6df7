package completion

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/infer"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"
)

// maxContextRows caps how many selection rows are sent with a request.
const maxContextRows = 20

const basePrompt = "You are a spreadsheet assistant. Answer questions about the user's data concisely. " +
	"You cannot change the workbook yourself; when the user wants a sum, pivot table, chart or formula, " +
	"tell them the phrasing to use, for example \"sum the amount column\" or \"create a bar chart\"."

// SystemPrompt renders the system prompt, including a description of data
// when a selection is present.
func SystemPrompt(data *models.SelectionSnapshot) string {
	if data.IsEmpty() {
		return basePrompt + "\n\nNo cells are selected."
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	fmt.Fprintf(&b, "\n\nSelected range: %s (%d rows x %d columns).\n", data.Address, data.RowCount, data.ColumnCount)

	report := infer.Analyze(data)
	if len(report.Columns) > 0 {
		b.WriteString("Columns:\n")
		for _, c := range report.Columns {
			fmt.Fprintf(&b, "- %s: %s\n", c.Header, c.Type)
		}
	}

	b.WriteString("Values (tab separated):\n")
	for i, row := range data.Values {
		if i == maxContextRows {
			fmt.Fprintf(&b, "... %d more rows\n", data.RowCount-maxContextRows)
			break
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = parser.Stringify(v)
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

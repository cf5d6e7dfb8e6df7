// Package intent turns free text about a selection into an action request.
//
// Classification walks a fixed, ordered table of rules. Among the primary
// rules the first whose predicate matches decides the outcome, with no
// backtracking. Overlay rules are then evaluated on their own and may add
// requests next to the primary one.
package intent

import "github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"

// Kind identifies the action a request asks for.
type Kind string

const (
	KindSum        Kind = "sum"
	KindColumnSum  Kind = "column_sum"
	KindPivotTable Kind = "pivot_table"
	KindChart      Kind = "chart"
	KindFormula    Kind = "formula"
	KindPairSum    Kind = "pair_sum"
	KindNextRowSum Kind = "next_row_sum"
)

// DefaultChartTitle is the title given to charts drawn from a request.
const DefaultChartTitle = "Data Visualization"

// Request is a classified action. Which fields are set depends on Kind.
type Request struct {
	// Kind is the requested action.
	Kind Kind `json:"kind"`
	// Rule names the classifier rule that built the request.
	Rule string `json:"rule"`
	// Source is the selection the action reads.
	Source models.Range `json:"source"`
	// Columns holds requested column names for column_sum and pair_sum.
	Columns []string `json:"columns,omitempty"`
	// DestSheet is the pivot destination sheet; empty means the default.
	DestSheet string `json:"dest_sheet,omitempty"`
	// RowFields, ColumnFields and ValueFields are caller-supplied pivot fields.
	RowFields    []string `json:"row_fields,omitempty"`
	ColumnFields []string `json:"column_fields,omitempty"`
	ValueFields  []string `json:"value_fields,omitempty"`
	// ChartKind and Title describe a chart.
	ChartKind models.ChartKind `json:"chart_kind,omitempty"`
	Title     string           `json:"title,omitempty"`
	// Formula is the expression to apply, leading = included.
	Formula string `json:"formula,omitempty"`
	// TargetCell is an explicit A1 write target, if the text named one.
	TargetCell string `json:"target_cell,omitempty"`
}

// Result is the outcome of classifying one message.
type Result struct {
	// Primary is the request from the first matching primary rule, if any.
	Primary *Request
	// Overlays are requests from overlay rules, in rule order.
	Overlays []Request
}

// Matched reports whether any rule produced a request.
func (r Result) Matched() bool {
	return r.Primary != nil || len(r.Overlays) > 0
}

// Requests returns the primary request followed by the overlays.
func (r Result) Requests() []Request {
	var out []Request
	if r.Primary != nil {
		out = append(out, *r.Primary)
	}
	return append(out, r.Overlays...)
}

package models

// ChartKind is the kind of chart an action draws.
type ChartKind string

const (
	ChartClusteredColumn ChartKind = "clustered-column"
	ChartClusteredBar    ChartKind = "clustered-bar"
	ChartLine            ChartKind = "line"
	ChartPie             ChartKind = "pie"
	ChartXYScatter       ChartKind = "xy-scatter"
)

// ChartSpec describes a chart to add to a sheet.
type ChartSpec struct {
	// Kind is the chart type.
	Kind ChartKind `json:"kind"`
	// Source is the data range the chart plots.
	Source Range `json:"source"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// Anchor is the cell region the chart occupies.
	Anchor Range `json:"anchor"`
}

// PivotSpec describes a pivot table build request.
type PivotSpec struct {
	// Source is the data range, header row included.
	Source Range `json:"source"`
	// DestSheet is the sheet that receives the pivot.
	DestSheet string `json:"dest_sheet"`
	// Rows are header labels used as row fields.
	Rows []string `json:"rows,omitempty"`
	// Columns are header labels used as column fields.
	Columns []string `json:"columns,omitempty"`
	// Values are header labels aggregated by sum.
	Values []string `json:"values,omitempty"`
}

// Package executor turns classified requests into Spreadsheet port calls.
//
// Worksheet and pivot creation run as cascades: ordered lists of named
// strategies tried one after another until one succeeds. Nothing is rolled
// back when a later step fails, so a failed pivot may leave an empty sheet
// behind.
package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/intent"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

// NumberFormat is the format applied to every written sum.
const NumberFormat = "0.00"

const (
	defaultPivotSheet   = "PivotTable"
	defaultSummarySheet = "Summary"
)

// chartAnchor is the region charts are placed in on the source sheet.
var chartAnchor = models.Range{R1: 2, C1: 8, R2: 16, C2: 15}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithMetrics records action and strategy counters.
func WithMetrics(m *Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// WithClock overrides the clock used for unique sheet names.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// WithPivotSheet sets the default pivot destination sheet name.
func WithPivotSheet(name string) Option {
	return func(e *Executor) {
		if name != "" {
			e.pivotSheet = name
		}
	}
}

// WithSummarySheet sets the sheet name used by the simple summary cascade.
func WithSummarySheet(name string) Option {
	return func(e *Executor) {
		if name != "" {
			e.summarySheet = name
		}
	}
}

// WithVerifyWrites toggles reading sums back after they are written.
func WithVerifyWrites(verify bool) Option {
	return func(e *Executor) { e.verifyWrites = verify }
}

// Executor runs actions against a Spreadsheet.
type Executor struct {
	sheet        Spreadsheet
	logger       *slog.Logger
	metrics      *Metrics
	now          func() time.Time
	pivotSheet   string
	summarySheet string
	verifyWrites bool
}

// New creates an Executor for sheet.
func New(sheet Spreadsheet, opts ...Option) *Executor {
	e := &Executor{
		sheet:        sheet,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:          time.Now,
		pivotSheet:   defaultPivotSheet,
		summarySheet: defaultSummarySheet,
		verifyWrites: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one request against the selection it was classified from.
// Every error, whether a resolution miss, an exhausted cascade or a port
// failure, ends up as a failed Outcome; nothing propagates further.
func (e *Executor) Execute(ctx context.Context, snap *models.SelectionSnapshot, req intent.Request) models.Outcome {
	msg, err := e.dispatch(ctx, snap, req)
	e.metrics.recordAction(string(req.Kind), err == nil)
	if err != nil {
		e.logger.ErrorContext(ctx, "action failed",
			"kind", req.Kind,
			"rule", req.Rule,
			"range", address(snap),
			"error", err)
		return models.Outcome{Succeeded: false, Message: err.Error()}
	}
	e.logger.InfoContext(ctx, "action succeeded", "kind", req.Kind, "rule", req.Rule, "range", address(snap))
	return models.Outcome{Succeeded: true, Message: msg}
}

func (e *Executor) dispatch(ctx context.Context, snap *models.SelectionSnapshot, req intent.Request) (string, error) {
	if snap.IsEmpty() {
		return "", ErrNoSelection
	}

	switch req.Kind {
	case intent.KindSum:
		return e.SumSelection(ctx, snap, req.TargetCell)
	case intent.KindColumnSum:
		return e.SumColumns(ctx, snap, req.Columns)
	case intent.KindPairSum:
		return e.SumPair(ctx, snap, req.Columns)
	case intent.KindNextRowSum:
		return e.SumNextRow(ctx, snap)
	case intent.KindPivotTable:
		fields := PivotFields{
			DestSheet: req.DestSheet,
			Rows:      req.RowFields,
			Columns:   req.ColumnFields,
			Values:    req.ValueFields,
		}
		if fields.IsZero() {
			return e.CreateSamplePivot(ctx, snap)
		}
		return e.CreatePivotTable(ctx, snap, fields)
	case intent.KindChart:
		return e.CreateChart(ctx, snap, req.ChartKind, req.Title)
	case intent.KindFormula:
		return e.ApplyFormula(ctx, snap, req.Formula, req.TargetCell)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, req.Kind)
	}
}

func address(snap *models.SelectionSnapshot) string {
	if snap == nil {
		return ""
	}
	return snap.Address
}

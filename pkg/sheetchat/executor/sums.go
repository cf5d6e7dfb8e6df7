package executor

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/aggregate"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/resolve"
)

// resolver maps a requested name onto a header column.
type resolver func(header []any, requested string) (int, bool)

// SumSelection adds up every cell of the selection and writes the total
// under the selection's first column, or into target when one is given.
func (e *Executor) SumSelection(ctx context.Context, snap *models.SelectionSnapshot, target string) (string, error) {
	if snap.IsEmpty() {
		return "", ErrNoSelection
	}

	total := aggregate.SumGrid(snap.Values)

	sheet, cell := snap.Range.Sheet, parser.CellName(snap.Range.C1, parser.RowBelow(snap.Range))
	if target != "" {
		r, err := parser.ParseRange(target, snap.Range.Sheet)
		if err != nil {
			return "", err
		}
		sheet, cell = r.Sheet, parser.CellName(r.C1, r.R1)
	}

	if err := e.writeSum(ctx, sheet, cell, total); err != nil {
		return "", err
	}
	return fmt.Sprintf("Sum of %s is %.2f (written to %s).", snap.Address, total, cell), nil
}

// SumNextRow writes a per-column total for every column of the selection
// into the row directly below it. A detected header row is left out of the
// totals.
func (e *Executor) SumNextRow(ctx context.Context, snap *models.SelectionSnapshot) (string, error) {
	if snap.IsEmpty() {
		return "", ErrNoSelection
	}

	fromRow := 0
	if snap.HasHeaders {
		fromRow = 1
	}
	totals := aggregate.SumColumns(snap.Values, fromRow)
	row := parser.RowBelow(snap.Range)

	for i, total := range totals {
		cell := parser.CellName(snap.Range.C1+i, row)
		if err := e.sheet.WriteCell(ctx, snap.Range.Sheet, cell, total, NumberFormat); err != nil {
			return "", fmt.Errorf("write %s: %w", cell, err)
		}
	}
	if err := e.sheet.Sync(ctx); err != nil {
		return "", err
	}

	return fmt.Sprintf("Wrote %d column totals to row %d.", len(totals), row), nil
}

// SumColumns sums each named column and writes each total under its own
// column in the row below the selection. Names are resolved exactly first,
// then by substring; names that do not resolve are skipped.
func (e *Executor) SumColumns(ctx context.Context, snap *models.SelectionSnapshot, names []string) (string, error) {
	return e.sumNamedColumns(ctx, snap, names, resolve.Column)
}

// SumPair is the amount-and-cost variant of SumColumns. Its names resolve
// by header substring only.
func (e *Executor) SumPair(ctx context.Context, snap *models.SelectionSnapshot, names []string) (string, error) {
	if len(names) == 0 {
		names = []string{"amount", "cost"}
	}
	return e.sumNamedColumns(ctx, snap, names, resolve.Substring)
}

func (e *Executor) sumNamedColumns(ctx context.Context, snap *models.SelectionSnapshot, names []string, find resolver) (string, error) {
	if snap.IsEmpty() {
		return "", ErrNoSelection
	}
	if !snap.HasDataRows() {
		return "", ErrInsufficientRows
	}

	header := snap.HeaderRow()
	row := parser.RowBelow(snap.Range)
	written := make(map[int]bool)
	var parts, missing []string

	for _, name := range names {
		idx, ok := find(header, name)
		if !ok {
			missing = append(missing, name)
			e.logger.WarnContext(ctx, "column not found", "column", name, "range", snap.Address)
			continue
		}
		if written[idx] {
			continue
		}

		total := aggregate.SumColumn(snap.Values, idx, 1)
		cell := parser.CellName(snap.Range.C1+idx, row)
		// Each column is flushed on its own.
		if err := e.writeSum(ctx, snap.Range.Sheet, cell, total); err != nil {
			return "", err
		}
		written[idx] = true
		parts = append(parts, fmt.Sprintf("%s: %.2f", parser.Stringify(header[idx]), total))
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("%w: %s", ErrColumnNotFound, strings.Join(names, ", "))
	}

	msg := "Column totals written below the selection: " + strings.Join(parts, ", ") + "."
	if len(missing) > 0 {
		msg += " Could not find: " + strings.Join(missing, ", ") + "."
	}
	return msg, nil
}

// writeSum writes a literal total, syncs, and when verification is on reads
// the cell back.
func (e *Executor) writeSum(ctx context.Context, sheet, cell string, total float64) error {
	if err := e.sheet.WriteCell(ctx, sheet, cell, total, NumberFormat); err != nil {
		return fmt.Errorf("write %s: %w", cell, err)
	}
	if err := e.sheet.Sync(ctx); err != nil {
		return fmt.Errorf("sync after %s: %w", cell, err)
	}
	if !e.verifyWrites {
		return nil
	}

	got, err := e.sheet.ReadCell(ctx, sheet, cell)
	if err != nil {
		e.logger.WarnContext(ctx, "read-back failed", "sheet", sheet, "cell", cell, "error", err)
		return nil
	}
	if n, ok := parser.ToNumber(got); !ok || math.Abs(n-total) > 1e-9 {
		e.logger.WarnContext(ctx, "read-back mismatch", "sheet", sheet, "cell", cell, "want", total, "got", got)
	}
	return nil
}

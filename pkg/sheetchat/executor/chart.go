package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"
)

// CreateChart draws the selection as a chart in the fixed anchor region of
// the selection's sheet.
func (e *Executor) CreateChart(ctx context.Context, snap *models.SelectionSnapshot, kind models.ChartKind, title string) (string, error) {
	if snap.IsEmpty() {
		return "", ErrNoSelection
	}
	if kind == "" {
		kind = models.ChartClusteredColumn
	}

	anchor := chartAnchor
	anchor.Sheet = snap.Range.Sheet
	spec := models.ChartSpec{
		Kind:   kind,
		Source: snap.Range,
		Title:  title,
		Anchor: anchor,
	}
	if err := e.sheet.CreateChart(ctx, spec); err != nil {
		return "", err
	}
	if err := e.sheet.Sync(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("Created a %s chart of %s.", kind, snap.Address), nil
}

// ApplyFormula writes formula into target, or by default into the cell
// below the selection's last column. A missing leading = is added.
func (e *Executor) ApplyFormula(ctx context.Context, snap *models.SelectionSnapshot, formula, target string) (string, error) {
	if snap.IsEmpty() {
		return "", ErrNoSelection
	}
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return "", fmt.Errorf("empty formula")
	}
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}

	sheet, cell := snap.Range.Sheet, parser.CellName(snap.Range.C2, parser.RowBelow(snap.Range))
	if target != "" {
		r, err := parser.ParseRange(target, snap.Range.Sheet)
		if err != nil {
			return "", err
		}
		sheet, cell = r.Sheet, parser.CellName(r.C1, r.R1)
	}

	if err := e.sheet.WriteFormula(ctx, sheet, cell, formula); err != nil {
		return "", err
	}
	if err := e.sheet.Sync(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("Applied %s to %s.", formula, cell), nil
}

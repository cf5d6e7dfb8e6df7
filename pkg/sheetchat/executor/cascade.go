package executor

import (
	"context"
	"fmt"
	"strings"
)

// maxSheetNameLength is the longest sheet name a workbook accepts.
const maxSheetNameLength = 31

// strategy is one named step of a cascade.
type strategy struct {
	name string
	run  func(ctx context.Context) error
}

// runCascade tries strategies in order and returns the name of the first
// that succeeds. When all fail the error wraps ErrCascadeExhausted and the
// last StrategyError.
func (e *Executor) runCascade(ctx context.Context, cascade string, strategies []strategy) (string, error) {
	var lastErr error
	for _, s := range strategies {
		e.logger.DebugContext(ctx, "attempting strategy", "cascade", cascade, "strategy", s.name)
		err := s.run(ctx)
		e.metrics.recordStrategy(cascade, s.name, err == nil)
		if err == nil {
			return s.name, nil
		}
		lastErr = NewStrategyError(cascade, s.name, err)
		e.logger.WarnContext(ctx, "strategy failed", "cascade", cascade, "strategy", s.name, "error", err)
	}
	return "", fmt.Errorf("%w: %w", ErrCascadeExhausted, lastErr)
}

// EnsureWorksheet returns an active sheet named as close to name as the
// workbook allows: an existing sheet of that name, a new one, a new one
// with a timestamp suffix, or an unnamed sheet inserted first.
func (e *Executor) EnsureWorksheet(ctx context.Context, name string) (string, error) {
	var sheet string
	strategies := []strategy{
		{
			name: "requested-name",
			run: func(ctx context.Context) error {
				existing, err := e.sheet.ListWorksheets(ctx)
				if err != nil {
					return err
				}
				for _, s := range existing {
					if strings.EqualFold(s, name) {
						sheet = s
						return nil
					}
				}
				created, err := e.sheet.CreateWorksheet(ctx, name)
				if err != nil {
					return err
				}
				sheet = created
				return nil
			},
		},
		{
			name: "unique-name",
			run: func(ctx context.Context) error {
				created, err := e.sheet.CreateWorksheet(ctx, e.uniqueSheetName(name))
				if err != nil {
					return err
				}
				sheet = created
				return nil
			},
		},
		{
			name: "insert-first",
			run: func(ctx context.Context) error {
				created, err := e.sheet.InsertWorksheet(ctx, 0)
				if err != nil {
					return err
				}
				sheet = created
				return nil
			},
		},
	}

	if _, err := e.runCascade(ctx, "worksheet", strategies); err != nil {
		return "", err
	}
	if err := e.sheet.ActivateWorksheet(ctx, sheet); err != nil {
		e.logger.WarnContext(ctx, "failed to activate worksheet", "sheet", sheet, "error", err)
	}
	return sheet, nil
}

// uniqueSheetName suffixes name with a timestamp, trimming name so the
// result fits the sheet name limit.
func (e *Executor) uniqueSheetName(name string) string {
	suffix := "_" + e.now().Format("20060102150405")
	base := []rune(name)
	if limit := maxSheetNameLength - len(suffix); len(base) > limit {
		base = base[:limit]
	}
	return string(base) + suffix
}

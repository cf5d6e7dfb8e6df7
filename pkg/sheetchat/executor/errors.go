package executor

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound indicates none of the requested columns resolved.
var ErrColumnNotFound = errors.New("column not found")

// ErrCascadeExhausted indicates every strategy of a cascade failed.
var ErrCascadeExhausted = errors.New("all strategies failed")

// ErrNoSelection indicates the action needs a non-empty selection.
var ErrNoSelection = errors.New("no selection")

// ErrInsufficientRows indicates a column action on a selection without a
// header row plus at least one data row.
var ErrInsufficientRows = errors.New("selection needs a header row and at least one data row")

// ErrUnknownAction indicates a request kind the executor does not handle.
var ErrUnknownAction = errors.New("unknown action")

// StrategyError records the failure of one cascade step.
type StrategyError struct {
	Cascade  string
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s cascade: strategy %q failed: %v", e.Cascade, e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// NewStrategyError creates a new StrategyError.
func NewStrategyError(cascade, strategy string, err error) *StrategyError {
	return &StrategyError{
		Cascade:  cascade,
		Strategy: strategy,
		Err:      err,
	}
}

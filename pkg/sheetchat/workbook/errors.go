package workbook

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the workbook file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the file is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates a named sheet is missing from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// OperationError records a failed workbook mutation.
type OperationError struct {
	SheetName string
	Operation string // "chart", "pivot", "table", "style", "sheet"
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("workbook %s failed on sheet %q: %v", e.Operation, e.SheetName, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError.
func NewOperationError(sheetName, operation string, err error) *OperationError {
	return &OperationError{
		SheetName: sheetName,
		Operation: operation,
		Err:       err,
	}
}

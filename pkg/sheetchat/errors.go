package sheetchat

import (
	"errors"
	"fmt"
)

// ErrTurnInProgress indicates Submit was called while another turn was
// still running.
var ErrTurnInProgress = errors.New("a turn is already in progress")

// ErrEmptyInput indicates Submit was called with blank text.
var ErrEmptyInput = errors.New("empty input")

// ConfigError represents an error loading or validating configuration.
type ConfigError struct {
	Path  string
	Field string // empty when the whole file failed to load
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config %q: field %s: %v", e.Path, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(path, field string, err error) *ConfigError {
	return &ConfigError{
		Path:  path,
		Field: field,
		Err:   err,
	}
}

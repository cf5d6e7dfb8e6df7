// Package models defines data structures shared by the conversation core.
package models

import "strings"

// IsEmpty reports whether a cell value is empty. A cell is empty when it is
// nil or a string containing only whitespace.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

// Package resolve maps loosely written field names onto header columns.
package resolve

import (
	"strings"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"
)

// Column finds the header column for requested. An exact case-insensitive
// match anywhere in the row wins over a substring match; among matches of
// the same kind the leftmost wins.
func Column(header []any, requested string) (int, bool) {
	want := normalize(requested)
	if want == "" {
		return -1, false
	}
	for i, h := range header {
		if normalize(parser.Stringify(h)) == want {
			return i, true
		}
	}
	return Substring(header, requested)
}

// Substring finds the leftmost header column containing requested,
// ignoring case.
func Substring(header []any, requested string) (int, bool) {
	want := normalize(requested)
	if want == "" {
		return -1, false
	}
	for i, h := range header {
		if strings.Contains(normalize(parser.Stringify(h)), want) {
			return i, true
		}
	}
	return -1, false
}

// Resolution pairs a requested field name with the header column it
// resolved to.
type Resolution struct {
	Requested string
	Index     int
	Header    string
}

// Columns resolves each requested name with Column. Names that do not
// resolve are returned in missing; callers skip them rather than abort.
func Columns(header []any, requested []string) (resolved []Resolution, missing []string) {
	for _, name := range requested {
		idx, ok := Column(header, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		resolved = append(resolved, Resolution{
			Requested: name,
			Index:     idx,
			Header:    parser.Stringify(header[idx]),
		})
	}
	return resolved, missing
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

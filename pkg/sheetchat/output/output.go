// Package output renders reports and conversation transcripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteMessages writes each message as "role: content". Continuation lines
// of multi-line content are indented under the role.
func WriteMessages(w io.Writer, msgs []models.Message) error {
	for _, m := range msgs {
		prefix := string(m.Role) + ": "
		content := strings.ReplaceAll(m.Content, "\n", "\n"+strings.Repeat(" ", len(prefix)))
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, content); err != nil {
			return err
		}
	}
	return nil
}

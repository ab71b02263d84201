package ledger

import (
	"strings"
	"time"
)

// DateLayout formato de fecha con que se guardan los registros.
const DateLayout = "2006-01-02"

var acceptedLayouts = []string{DateLayout, time.RFC3339, "2006-01-02T15:04:05"}

// ParseDate interpreta la fecha de un registro. ok=false si no se reconoce.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate da formato de registro a t.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

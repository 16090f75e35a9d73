package model

import (
	"strings"
	"time"
)

// timestampLayouts covers the formats found in stored snapshots: full ISO
// timestamps, the "2006-01-02 15:04" form used by lastMoved, and bare dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a stored timestamp string. The second return value is
// false when the string is blank or matches no known layout; callers treat
// such timestamps as never winning a latest-timestamp comparison.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

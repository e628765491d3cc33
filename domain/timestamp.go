package domain

import (
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp reads the date formats the CMS and the intake form produce. Values
// without an offset are read in loc. ok is false for empty or malformed input.
func ParseTimestamp(s string, loc *time.Location) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp is the representation written to the CMS.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatDate writes the civil date of t in its own location, the form a date-only
// CMS attribute stores.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDeadline writes a deadline entered as a bare date (midnight in its location)
// as that date, and any other instant as a timestamp.
func FormatDeadline(t time.Time) string {
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return FormatDate(t)
	}
	return FormatTimestamp(t)
}

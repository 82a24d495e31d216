package utils

import (
	"strings"
	"time"

	"busticket/internal/domain"
)

const layoutDateTime = "2006-01-02 15:04:05"

// ParseDate parses YYYY-MM-DD at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(domain.DateLayout, strings.TrimSpace(s), loc)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}

// EpochMillis matches the millisecond timestamps used in booking references.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

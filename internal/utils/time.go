package utils

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseTimestamp interprets v as an instant. time.Time values are returned
// as is; strings are parsed with dateparse, and strings without an explicit
// offset are read as UTC. Other values never parse.
func ParseTimestamp(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// FormatInLocation renders t as ISO 8601 with offset in loc.
func FormatInLocation(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(time.RFC3339Nano)
}

package models

import (
	"strings"
	"time"
)

// DateFormat is the layout of user-entered calendar dates (start, end, due).
const DateFormat = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp. The boolean is false
// for empty or malformed input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

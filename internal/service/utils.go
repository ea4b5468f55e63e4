package service

import (
	"strings"
	"time"
)

// cleanTitle drops invalid UTF-8 so titles can be stored as TEXT. Everything
// else, including surrounding whitespace, is kept as the caller sent it.
func cleanTitle(s string) string {
	return strings.ToValidUTF8(s, "")
}

// nextTimestamp returns now at microsecond precision, moved past prev when
// the clock has not advanced beyond it.
func nextTimestamp(now, prev time.Time) time.Time {
	now = now.UTC().Truncate(time.Microsecond)
	if !prev.IsZero() && !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}

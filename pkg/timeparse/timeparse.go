// Package timeparse parses the date and timestamp shapes that appear in
// usage and seat payloads.
package timeparse

import (
	"fmt"
	"strings"
	"time"
)

var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Parse accepts an ISO-8601 date or date-time string. Naive timestamps are
// interpreted as UTC.
func Parse(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", trimmed)
}

// ParseDay parses a YYYY-MM-DD date only, for filter bounds from query params.
func ParseDay(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	t, err := time.ParseInLocation("2006-01-02", trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", trimmed)
	}
	return t, nil
}

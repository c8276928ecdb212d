package todo

import (
	"strings"
	"time"
)

const (
	// DateLayout is the ISO-8601 calendar date accepted for due dates.
	DateLayout = "2006-01-02"
	// DefaultDisplayLayout renders dates like "June 1, 2025".
	DefaultDisplayLayout = "January 2, 2006"
)

// ParseDueDate parses an ISO-8601 date at local midnight.
func ParseDueDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// FormatDueDate renders an ISO date with layout. An empty layout uses
// DefaultDisplayLayout. Dates that do not parse are returned unchanged.
func FormatDueDate(date, layout string) string {
	if layout == "" {
		layout = DefaultDisplayLayout
	}
	t, err := ParseDueDate(date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// Today returns now as an ISO date in now's location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// BeforeDate reports whether date falls before min. Either value failing
// to parse yields false.
func BeforeDate(date, min string) bool {
	d, err := ParseDueDate(date)
	if err != nil {
		return false
	}
	m, err := ParseDueDate(min)
	if err != nil {
		return false
	}
	return d.Before(m)
}

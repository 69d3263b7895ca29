// Package dates is the single place where calendar values coming from the CMS are
// interpreted. Every helper works in UTC: the CMS stores date fields as YYYY-MM-DD and
// timestamps as RFC3339, and neither is ever shifted to the server's local zone.
package dates

import (
	"strconv"
	"strings"
	"time"
)

// Layout is the date-input layout used by forms and filters.
const Layout = "2006-01-02"

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	Layout,
}

// Parse reads a CMS date or timestamp and returns it in UTC.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ISODate returns the YYYY-MM-DD prefix of a date or timestamp, in UTC.
// Unparseable input falls back to its first ten characters, empty input to "".
func ISODate(value string) string {
	if t, ok := Parse(value); ok {
		return t.Format(Layout)
	}
	value = strings.TrimSpace(value)
	if len(value) >= len(Layout) {
		return value[:len(Layout)]
	}
	return value
}

// YearUTC extracts the calendar year of a stored full date. Zero means unknown.
func YearUTC(value string) int {
	if t, ok := Parse(value); ok {
		return t.Year()
	}
	if len(value) >= 4 {
		if y, err := strconv.Atoi(value[:4]); err == nil {
			return y
		}
	}
	return 0
}

// YearDate turns a bare year into the full date the CMS stores for academic years.
func YearDate(year int) string {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(Layout)
}

// NextDay returns the day after value as YYYY-MM-DD. Used for inclusive end dates.
func NextDay(value string) string {
	t, ok := Parse(value)
	if !ok {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(Layout)
}

// DaysInclusive counts calendar days from start to end, both included.
// It returns 0 when either side is missing or end is before start.
func DaysInclusive(start, end string) int {
	s, ok := Parse(ISODate(start))
	if !ok {
		return 0
	}
	e, ok := Parse(ISODate(end))
	if !ok || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// Before reports whether a is strictly before b when both parse.
func Before(a, b string) bool {
	ta, okA := Parse(ISODate(a))
	tb, okB := Parse(ISODate(b))
	return okA && okB && ta.Before(tb)
}

// InRange reports whether value's day lies within [from, to]. Empty bounds are open.
func InRange(value, from, to string) bool {
	day := ISODate(value)
	if from != "" && (day == "" || day < ISODate(from)) {
		return false
	}
	if to != "" && (day == "" || day > ISODate(to)) {
		return false
	}
	return true
}

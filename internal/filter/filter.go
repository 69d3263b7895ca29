// Package filter is the in-memory search used by every table. Predicates are ANDed;
// an empty value never constrains.
package filter

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/trainee-dashboard/internal/dates"
)

// Spec declares which fields of T each kind of predicate reads.
type Spec[T any] struct {
	// Text fields are searched by case-insensitive substring.
	Text []func(T) string
	// Dates are matched on their UTC YYYY-MM-DD prefix.
	Dates map[string]func(T) string
	// Years hold full dates filtered by their UTC calendar year.
	Years map[string]func(T) string
	// Enums are matched exactly.
	Enums map[string]func(T) string
	// Refs return the reference ids of a record; a record passes when any of them
	// is in the selected set.
	Refs map[string]func(T) []string
}

// Query is one set of predicates.
type Query struct {
	Text     string
	DateOn   map[string]string
	DateFrom map[string]string
	DateTo   map[string]string
	Years    map[string]int
	Enums    map[string]string
	Refs     map[string][]string
}

// Empty reports whether q constrains nothing.
func (q Query) Empty() bool {
	if strings.TrimSpace(q.Text) != "" {
		return false
	}
	for _, m := range []map[string]string{q.DateOn, q.DateFrom, q.DateTo, q.Enums} {
		for _, v := range m {
			if v != "" {
				return false
			}
		}
	}
	for _, y := range q.Years {
		if y != 0 {
			return false
		}
	}
	for _, set := range q.Refs {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// Apply returns the items matching q, in their original order. The input is not modified.
func Apply[T any](items []T, spec Spec[T], q Query) []T {
	out := make([]T, 0, len(items))
	if q.Empty() {
		return append(out, items...)
	}
	for _, item := range items {
		if Match(item, spec, q) {
			out = append(out, item)
		}
	}
	return out
}

// Match evaluates q against one item. Keys of q the spec does not declare are ignored.
func Match[T any](item T, spec Spec[T], q Query) bool {
	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" && len(spec.Text) > 0 {
		found := false
		for _, field := range spec.Text {
			if strings.Contains(strings.ToLower(field(item)), text) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for key, get := range spec.Dates {
		value := get(item)
		if on := q.DateOn[key]; on != "" && dates.ISODate(value) != dates.ISODate(on) {
			return false
		}
		if !dates.InRange(value, q.DateFrom[key], q.DateTo[key]) {
			return false
		}
	}

	for key, get := range spec.Years {
		if year := q.Years[key]; year != 0 && dates.YearUTC(get(item)) != year {
			return false
		}
	}

	for key, get := range spec.Enums {
		if want := q.Enums[key]; want != "" && get(item) != want {
			return false
		}
	}

	for key, get := range spec.Refs {
		selected := q.Refs[key]
		if len(selected) == 0 {
			continue
		}
		if !slices.ContainsFunc(get(item), func(id string) bool { return slices.Contains(selected, id) }) {
			return false
		}
	}

	return true
}

// ParseQuery reads predicates from URL parameters:
//
//	q=<text>  <date>=YYYY-MM-DD  <date>_from=..  <date>_to=..  <year>=2024
//	<enum>=value  <ref>=id1,id2 (or repeated)
//
// Only keys declared by spec are read.
func ParseQuery[T any](values url.Values, spec Spec[T]) Query {
	q := Query{
		Text:     strings.TrimSpace(values.Get("q")),
		DateOn:   map[string]string{},
		DateFrom: map[string]string{},
		DateTo:   map[string]string{},
		Years:    map[string]int{},
		Enums:    map[string]string{},
		Refs:     map[string][]string{},
	}

	for key := range spec.Dates {
		setIf(q.DateOn, key, values.Get(key))
		setIf(q.DateFrom, key, values.Get(key+"_from"))
		setIf(q.DateTo, key, values.Get(key+"_to"))
	}
	for key := range spec.Years {
		if year, err := strconv.Atoi(strings.TrimSpace(values.Get(key))); err == nil && year > 0 {
			q.Years[key] = year
		}
	}
	for key := range spec.Enums {
		setIf(q.Enums, key, values.Get(key))
	}
	for key := range spec.Refs {
		var ids []string
		for _, raw := range values[key] {
			for _, id := range strings.Split(raw, ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, id)
				}
			}
		}
		if len(ids) > 0 {
			q.Refs[key] = ids
		}
	}
	return q
}

func setIf(m map[string]string, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		m[key] = value
	}
}

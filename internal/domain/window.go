package domain

import (
	"strings"
	"time"
)

// Window is an hour-of-day range, inclusive at both ends, with the number of
// samples to take when the target date is absent from a feed.
type Window struct {
	StartHour       int
	EndHour         int
	FallbackSamples int
}

// DaylightWindow is the 08:00–18:00 analysis window.
var DaylightWindow = Window{StartHour: 8, EndHour: 18, FallbackSamples: 11}

// Selection is the ordered set of indices picked from a feed.
type Selection struct {
	Indices []int
	// Approximated is true when the indices come from the fallback rather
	// than the target date.
	Approximated bool
}

var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseLocalTime parses an upstream hourly timestamp. The wall-clock fields
// are kept as sent; zone-less values are read as UTC.
func ParseLocalTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HourLabel formats an upstream timestamp as "HH:MM". Unparsable input is
// returned unchanged.
func HourLabel(ts string) string {
	t, ok := ParseLocalTime(ts)
	if !ok {
		return ts
	}
	return t.Format("15:04")
}

func (w Window) contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

// Select returns the indices of times that fall on targetDate (YYYY-MM-DD)
// within the window, in their original order. When none match it falls back
// to the first FallbackSamples in-window samples of any date. It returns
// ErrNoDataForWindow when the fallback is empty too.
func (w Window) Select(times []string, targetDate string) (Selection, error) {
	parsed := make([]time.Time, len(times))
	valid := make([]bool, len(times))
	for i, ts := range times {
		parsed[i], valid[i] = ParseLocalTime(ts)
	}

	var indices []int
	for i := range times {
		if !valid[i] || parsed[i].Format(time.DateOnly) != targetDate {
			continue
		}
		if w.contains(parsed[i].Hour()) {
			indices = append(indices, i)
		}
	}
	if len(indices) > 0 {
		return Selection{Indices: indices}, nil
	}

	for i := range times {
		if !valid[i] || !w.contains(parsed[i].Hour()) {
			continue
		}
		indices = append(indices, i)
		if len(indices) >= w.FallbackSamples {
			break
		}
	}
	if len(indices) == 0 {
		return Selection{}, ErrNoDataForWindow
	}
	return Selection{Indices: indices, Approximated: true}, nil
}

// Times returns the timestamps at the selected indices.
func (s Selection) Times(times []string) []string {
	out := make([]string, 0, len(s.Indices))
	for _, i := range s.Indices {
		if i < len(times) {
			out = append(out, times[i])
		}
	}
	return out
}

// Pick returns the values at the selected indices converted from one unit to
// another. Nil samples, indices past the end of values and unconvertible
// values are dropped, so the result may be shorter than the selection.
func Pick(values []*float64, sel Selection, from, to Unit) []float64 {
	out := make([]float64, 0, len(sel.Indices))
	for _, i := range sel.Indices {
		if i >= len(values) || values[i] == nil {
			continue
		}
		v, ok := Convert(*values[i], from, to)
		if !ok {
			continue
		}
		out = append(out, v)
	}
	return out
}

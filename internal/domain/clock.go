package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time of the package clock.
func Now() time.Time {
	return clock.Now()
}

// Today returns the current calendar date (YYYY-MM-DD) in loc. A nil loc
// means UTC.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return clock.Now().In(loc).Format(time.DateOnly)
}

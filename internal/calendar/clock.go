package calendar

import (
	"fmt"
	"time"
)

// Clock abstracts time.Now() to allow deterministic testing.
// The picker and the feed generator use it to determine "today".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the clock's current local date in the given system.
// A nil clock, or one reporting the zero time, is treated as unavailable.
func Today(clock Clock, system System) (Date, error) {
	if clock == nil {
		return Date{}, ErrClockUnavailable
	}
	now := clock.Now()
	if now.IsZero() {
		return Date{}, ErrClockUnavailable
	}
	// Local calendar day of the operator, not the UTC instant.
	y, m, d := now.Date()
	g := Date{Year: y, Month: int(m), Day: d, System: Gregorian}
	out, err := Convert(g, system)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrClockUnavailable, err)
	}
	return out, nil
}

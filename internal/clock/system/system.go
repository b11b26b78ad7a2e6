// Package system provides the wall clock used by scroll engines outside tests.
package system

import "time"

// Clock implements storyteller.Clock using time.Now. Readings keep the
// monotonic component so throttle intervals survive wall-clock adjustments.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current local time including its monotonic reading.
func (Clock) Now() time.Time {
	return time.Now()
}

// Since reports the elapsed time since t on this clock.
func (c Clock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

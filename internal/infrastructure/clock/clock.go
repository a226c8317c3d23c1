// Package clock provides the port.Clock implementations.
package clock

import "time"

// System reads the wall clock and reports it in a fixed business location,
// so month boundaries fall where the business observes them.
type System struct {
	loc *time.Location
}

// NewSystem returns a wall clock in loc. A nil loc means UTC.
func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{loc: loc}
}

// Now returns the current instant in the configured location.
func (s System) Now() time.Time { return time.Now().In(s.loc) }

// Location returns the configured location.
func (s System) Location() *time.Location { return s.loc }

// Fixed always returns the same instant.
type Fixed struct {
	at time.Time
}

// NewFixed returns a clock frozen at t.
func NewFixed(t time.Time) Fixed { return Fixed{at: t} }

// Now returns the frozen instant.
func (f Fixed) Now() time.Time { return f.at }

package domain

import (
	"fmt"
	"time"
)

// TimeInterval is a half-open time range [start, end).
// The zero value is not a valid interval; use NewTimeInterval.
type TimeInterval struct {
	start time.Time
	end   time.Time
}

// NewTimeInterval builds an interval, failing with ErrInvalidInterval when start >= end.
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if !start.Before(end) {
		return TimeInterval{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeInterval{start: start, end: end}, nil
}

// Start returns the inclusive start instant
func (i TimeInterval) Start() time.Time { return i.start }

// End returns the exclusive end instant
func (i TimeInterval) End() time.Time { return i.end }

// Duration returns end - start
func (i TimeInterval) Duration() time.Duration { return i.end.Sub(i.start) }

// IsZero reports whether the interval was never initialised
func (i TimeInterval) IsZero() bool { return i.start.IsZero() && i.end.IsZero() }

// Overlaps reports whether the two intervals share at least one instant.
// Intervals that only touch at an endpoint do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return Overlaps(i, other)
}

// Contains reports whether start <= instant < end
func (i TimeInterval) Contains(instant time.Time) bool {
	return !instant.Before(i.start) && instant.Before(i.end)
}

// Equal compares instants, ignoring location
func (i TimeInterval) Equal(other TimeInterval) bool {
	return i.start.Equal(other.start) && i.end.Equal(other.end)
}

// String implements fmt.Stringer
func (i TimeInterval) String() string {
	return fmt.Sprintf("[%s, %s)", i.start.Format(time.RFC3339), i.end.Format(time.RFC3339))
}

// Overlaps is true iff a.start < b.end and b.start < a.end
func Overlaps(a, b TimeInterval) bool {
	return a.start.Before(b.end) && b.start.Before(a.end)
}

package domain

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

// SlotState is the read-side state of a grid slot
type SlotState string

const (
	SlotFree   SlotState = "free"
	SlotBooked SlotState = "booked"
)

// SlotGrid describes the candidate slots of one day.
// Slots start at Date@OpenHour:00 and never cross Date@CloseHour:00.
type SlotGrid struct {
	Date        time.Time // only the calendar date is used, in Date.Location()
	OpenHour    int
	CloseHour   int
	SlotMinutes int
}

// Validate checks the grid parameters
func (g SlotGrid) Validate() error {
	if g.SlotMinutes <= 0 {
		return fmt.Errorf("%w: slot length must be positive, got %d", ErrInvalidConfiguration, g.SlotMinutes)
	}
	if g.OpenHour < 0 || g.CloseHour > 24 {
		return fmt.Errorf("%w: hours must be within 0..24, got %d..%d", ErrInvalidConfiguration, g.OpenHour, g.CloseHour)
	}
	if g.CloseHour <= g.OpenHour {
		return fmt.Errorf("%w: close hour %d must be after open hour %d", ErrInvalidConfiguration, g.CloseHour, g.OpenHour)
	}
	return nil
}

// All yields the slots in chronological order. The sequence is restartable.
// The grid must be valid (see Validate).
func (g SlotGrid) All() iter.Seq[TimeInterval] {
	return func(yield func(TimeInterval) bool) {
		y, m, d := g.Date.Date()
		loc := g.Date.Location()
		step := time.Duration(g.SlotMinutes) * time.Minute

		start := time.Date(y, m, d, g.OpenHour, 0, 0, 0, loc)
		closeAt := time.Date(y, m, d, g.CloseHour, 0, 0, 0, loc)

		for {
			end := start.Add(step)
			if end.After(closeAt) {
				return
			}
			if !yield(TimeInterval{start: start, end: end}) {
				return
			}
			start = end
		}
	}
}

// GenerateSlots returns the fixed-length slots of date between openHour and closeHour.
// A trailing partial slot is dropped.
func GenerateSlots(date time.Time, openHour, closeHour, slotMinutes int) ([]TimeInterval, error) {
	grid := SlotGrid{Date: date, OpenHour: openHour, CloseHour: closeHour, SlotMinutes: slotMinutes}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	return slices.Collect(grid.All()), nil
}

// SlotAvailability is one slot of the availability grid
type SlotAvailability struct {
	Interval TimeInterval
	State    SlotState
}

// IsFree returns true if nothing active overlaps the slot
func (s SlotAvailability) IsFree() bool {
	return s.State == SlotFree
}

// IsBooked returns true if an active booking overlaps the slot
func (s SlotAvailability) IsBooked() bool {
	return s.State == SlotBooked
}

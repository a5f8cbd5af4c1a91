package domain

import (
	"strings"
	"time"
)

// Default schedule values
const (
	DefaultOpenHour          = 6
	DefaultCloseHour         = 22
	DefaultSlotMinutes       = 30
	DefaultMaxRecurrenceDays = 180
	DefaultTimezone          = "UTC"
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxUserIDLength             = 128
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses bookings with these statuses block the equipment
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusPending,
}

// InactiveStatuses bookings with these statuses free the equipment
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

var weekdaysByName = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday accepts full English weekday names and three-letter abbreviations, case-insensitive
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, ErrInvalidWeekday
	}
	return day, nil
}

package domain

import "errors"

var (
	// ErrInvalidInterval returned when an interval is constructed with start >= end
	ErrInvalidInterval = errors.New("domain: invalid interval, start must be before end")

	// ErrInvalidConfiguration returned for slot grid parameters that cannot produce a grid
	ErrInvalidConfiguration = errors.New("domain: invalid slot grid configuration")

	// ErrInvalidBookingStatus returned when a status string is not a known booking status
	ErrInvalidBookingStatus = errors.New("domain: invalid booking status")

	// ErrInvalidEquipmentStatus returned when a status string is not a known equipment status
	ErrInvalidEquipmentStatus = errors.New("domain: invalid equipment status")

	// ErrInvalidWeekday returned when a weekday name cannot be parsed
	ErrInvalidWeekday = errors.New("domain: invalid weekday")
)

package domain

import (
	"time"

	"github.com/m04kA/gym-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusConfirmed, StatusPending, StatusCancelled, StatusCompleted:
		return status, nil
	default:
		return "", ErrInvalidBookingStatus
	}
}

// Booking is a reservation of one piece of equipment for [StartTime, EndTime)
type Booking struct {
	ID                string
	EquipmentID       string
	UserID            string
	StartTime         time.Time
	EndTime           time.Time
	Status            BookingStatus
	Notes             *string
	RecurrenceGroupID *string // shared by every occurrence of one recurring request

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booking's time range.
// Bookings are validated on creation and the table has CHECK (end_time > start_time).
func (b *Booking) Interval() TimeInterval {
	return TimeInterval{start: b.StartTime, end: b.EndTime}
}

// IsActive returns true if the booking takes part in conflict detection
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusPending
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// IsRecurring returns true if the booking was expanded from a recurring request
func (b *Booking) IsRecurring() bool {
	return b.RecurrenceGroupID != nil
}

// EffectiveStatus is the status shown to clients: an active booking that already ended
// is reported as completed. The stored status is not changed.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.IsActive() && !b.EndTime.After(now) {
		return StatusCompleted
	}
	return b.Status
}

// BookingsFilter filter for booking lists
type BookingsFilter struct {
	EquipmentID     *string
	UserID          *string
	From            *time.Time     // bookings ending after From
	To              *time.Time     // bookings starting before To
	Status          *BookingStatus // exact status, overrides IncludeInactive
	IncludeInactive bool           // include cancelled and completed bookings
}

// RecurrenceSpec expands one request into an occurrence on each listed weekday up to UntilDate (inclusive)
type RecurrenceSpec struct {
	DaysOfWeek []time.Weekday
	UntilDate  time.Time
}

// Includes returns true if the weekday is part of the recurrence
func (r *RecurrenceSpec) Includes(day time.Weekday) bool {
	for _, d := range r.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// BookingRequest is the input of booking creation
type BookingRequest struct {
	EquipmentID string
	UserID      string
	Date        time.Time // calendar date of the first occurrence
	StartTime   types.TimeString
	EndTime     types.TimeString
	Recurrence  *RecurrenceSpec
	Notes       *string
}

// IsRecurring returns true if the request carries a recurrence
func (r *BookingRequest) IsRecurring() bool {
	return r.Recurrence != nil
}

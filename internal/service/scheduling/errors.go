package scheduling

import (
	"errors"
	"fmt"

	"github.com/m04kA/gym-booking-service/internal/domain"
)

var (
	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени окончания
	ErrInvalidTimeRange = errors.New("scheduling: start time must be before end time")

	// ErrEquipmentUnavailable возвращается, когда оборудование нельзя бронировать (статус не available)
	ErrEquipmentUnavailable = errors.New("scheduling: equipment is not available for booking")

	// ErrBookingConflict возвращается, когда запрошенное время пересекается с активными бронированиями
	ErrBookingConflict = errors.New("scheduling: booking conflicts with existing bookings")

	// ErrActiveBookings возвращается, когда статус оборудования нельзя сменить из-за предстоящих бронирований
	ErrActiveBookings = errors.New("scheduling: equipment has upcoming bookings")

	// ErrInvalidRecurrence возвращается при некорректном правиле повторения
	ErrInvalidRecurrence = errors.New("scheduling: invalid recurrence")
)

// ConflictError несет полный список конфликтующих бронирований.
// errors.Is(err, ErrBookingConflict) или errors.Is(err, ErrActiveBookings) в зависимости от Cause.
type ConflictError struct {
	Cause    error
	Bookings []*domain.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflicting booking(s)", e.Cause, len(e.Bookings))
}

func (e *ConflictError) Unwrap() error {
	return e.Cause
}

// ConflictingBookings достает список конфликтующих бронирований из цепочки ошибок
func ConflictingBookings(err error) []*domain.Booking {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr.Bookings
	}
	return nil
}

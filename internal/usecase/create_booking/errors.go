package create_booking

import "errors"

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("create_booking: equipment not found")

	// ErrEquipmentUnavailable возвращается, когда оборудование нельзя бронировать (обслуживание, неисправность)
	ErrEquipmentUnavailable = errors.New("create_booking: equipment is not available")

	// ErrBookingConflict возвращается, когда время пересекается с существующими бронированиями
	ErrBookingConflict = errors.New("create_booking: time conflicts with existing bookings")

	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени окончания
	ErrInvalidTimeRange = errors.New("create_booking: start time must be before end time")

	// ErrInvalidRecurrence возвращается при некорректном правиле повторения
	ErrInvalidRecurrence = errors.New("create_booking: invalid recurrence")

	// ErrBookingInPast возвращается, когда первое вхождение уже началось
	ErrBookingInPast = errors.New("create_booking: booking starts in the past")

	// ErrEquipmentBusy возвращается, когда не удалось дождаться блокировки оборудования
	ErrEquipmentBusy = errors.New("create_booking: equipment is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError ошибка конфликта со списком всех пересекающихся бронирований
type ConflictError struct {
	Conflicting []Booking
}

func (e *ConflictError) Error() string {
	return ErrBookingConflict.Error()
}

func (e *ConflictError) Unwrap() error {
	return ErrBookingConflict
}

// ConflictingBookings достает список конфликтующих бронирований из ошибки
func ConflictingBookings(err error) []Booking {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr.Conflicting
	}
	return nil
}

package update_equipment_status

import "errors"

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("update_equipment_status: equipment not found")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("update_equipment_status: invalid equipment status")

	// ErrActiveBookings возвращается, когда у оборудования есть предстоящие бронирования
	ErrActiveBookings = errors.New("update_equipment_status: equipment has upcoming bookings")

	// ErrEquipmentBusy возвращается, когда не удалось дождаться блокировки оборудования
	ErrEquipmentBusy = errors.New("update_equipment_status: equipment is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_equipment_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_equipment_status: internal error")
)

// BlockedError ошибка со всеми бронированиями, мешающими смене статуса
type BlockedError struct {
	Blocking []Booking
}

func (e *BlockedError) Error() string {
	return ErrActiveBookings.Error()
}

func (e *BlockedError) Unwrap() error {
	return ErrActiveBookings
}

// BlockingBookings достает список бронирований из ошибки
func BlockingBookings(err error) []Booking {
	var blockedErr *BlockedError
	if errors.As(err, &blockedErr) {
		return blockedErr.Blocking
	}
	return nil
}

package check_conflict

import (
	"time"

	"github.com/m04kA/gym-booking-service/pkg/types"
)

// Request модель запроса проверки интервала
type Request struct {
	EquipmentID string
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
}

// Response результат проверки.
// EquipmentAvailable=false означает, что создание бронирования все равно будет отклонено.
type Response struct {
	Conflict            bool
	ConflictingBookings []Booking
	EquipmentStatus     string
	EquipmentAvailable  bool
}

// Booking модель пересекающегося бронирования
type Booking struct {
	ID        string
	UserID    string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

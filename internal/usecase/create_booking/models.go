package create_booking

import (
	"time"

	"github.com/m04kA/gym-booking-service/internal/domain"
	"github.com/m04kA/gym-booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID           string           // ID участника (из X-User-ID)
	EquipmentID      string           // ID оборудования
	Date             time.Time        // Дата первого вхождения (без времени)
	StartTime        types.TimeString // Время начала (например, "10:00")
	EndTime          types.TimeString // Время окончания (например, "11:00")
	RecurringDays    []time.Weekday   // Дни недели повторения (опционально)
	RecurringEndDate *time.Time       // Последняя дата повторения включительно (вместе с RecurringDays)
	Notes            *string          // Заметки (опционально)
}

// IsRecurring возвращает true, если запрос повторяющийся
func (r *Request) IsRecurring() bool {
	return len(r.RecurringDays) > 0 || r.RecurringEndDate != nil
}

// Response модель ответа с созданными бронированиями (по одному на вхождение)
type Response struct {
	Bookings []Booking
}

// Booking модель бронирования
type Booking struct {
	ID                string
	EquipmentID       string
	UserID            string
	StartTime         time.Time
	EndTime           time.Time
	Status            string
	Notes             *string
	RecurrenceGroupID *string
	CreatedAt         time.Time
}

func toBooking(b *domain.Booking) Booking {
	return Booking{
		ID:                b.ID,
		EquipmentID:       b.EquipmentID,
		UserID:            b.UserID,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		Status:            string(b.Status),
		Notes:             b.Notes,
		RecurrenceGroupID: b.RecurrenceGroupID,
		CreatedAt:         b.CreatedAt,
	}
}

func toBookings(bookings []*domain.Booking) []Booking {
	result := make([]Booking, len(bookings))
	for i, b := range bookings {
		result[i] = toBooking(b)
	}
	return result
}

package get_equipment_bookings

import (
	"context"

	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetEquipmentBookings(ctx context.Context, req *models.GetEquipmentBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

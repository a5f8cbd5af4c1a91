package get_equipment

import (
	"context"

	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
)

type EquipmentService interface {
	GetEquipment(ctx context.Context, id string) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

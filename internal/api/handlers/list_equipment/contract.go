package list_equipment

import (
	"context"

	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
)

type EquipmentService interface {
	ListEquipment(ctx context.Context, req *models.ListEquipmentRequest) (*models.EquipmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

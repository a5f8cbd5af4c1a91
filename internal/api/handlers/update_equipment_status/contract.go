package update_equipment_status

import (
	"context"

	updateStatus "github.com/m04kA/gym-booking-service/internal/usecase/update_equipment_status"
)

type UpdateEquipmentStatusUseCase interface {
	Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package delete_equipment

import "context"

type EquipmentService interface {
	DeleteEquipment(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

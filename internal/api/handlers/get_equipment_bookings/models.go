package get_equipment_bookings

import (
	"net/http"
	"time"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(equipmentID string, r *http.Request, loc *time.Location) (*models.GetEquipmentBookingsRequest, error) {
	date, err := handlers.QueryDate(r, "date", loc)
	if err != nil {
		return nil, err
	}

	includeInactive, err := handlers.QueryBool(r, "includeInactive")
	if err != nil {
		return nil, err
	}

	return &models.GetEquipmentBookingsRequest{
		EquipmentID:     equipmentID,
		Date:            date,
		IncludeInactive: includeInactive,
	}, nil
}

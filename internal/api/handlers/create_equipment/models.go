package create_equipment

import "github.com/m04kA/gym-booking-service/internal/service/bookings/models"

// CreateEquipmentRequest тело POST /equipment
type CreateEquipmentRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
	Status   string `json:"status,omitempty"`
	Bookable *bool  `json:"bookable,omitempty"`
}

func (r *CreateEquipmentRequest) ToServiceRequest() *models.CreateEquipmentRequest {
	return &models.CreateEquipmentRequest{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		Location: r.Location,
		Status:   r.Status,
		Bookable: r.Bookable,
	}
}

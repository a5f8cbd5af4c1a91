package update_equipment_status

import (
	"time"

	updateStatus "github.com/m04kA/gym-booking-service/internal/usecase/update_equipment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// EquipmentResponse HTTP response model
type EquipmentResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Location       string `json:"location,omitempty"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus"`
	Bookable       bool   `json:"bookable"`
	UpdatedAt      string `json:"updatedAt"`
}

// BookingResponse бронирование, мешающее смене статуса
type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(equipmentID, userID string) *updateStatus.Request {
	return &updateStatus.Request{
		EquipmentID: equipmentID,
		Status:      r.Status,
		UserID:      userID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *EquipmentResponse {
	return &EquipmentResponse{
		ID:             resp.ID,
		Name:           resp.Name,
		Category:       resp.Category,
		Location:       resp.Location,
		Status:         resp.Status,
		PreviousStatus: resp.PreviousStatus,
		Bookable:       resp.Bookable,
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []updateStatus.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, BookingResponse{
			ID:        b.ID,
			UserID:    b.UserID,
			StartTime: b.StartTime.Format(time.RFC3339),
			EndTime:   b.EndTime.Format(time.RFC3339),
			Status:    b.Status,
		})
	}
	return result
}

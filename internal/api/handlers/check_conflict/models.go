package check_conflict

import (
	"time"

	checkConflict "github.com/m04kA/gym-booking-service/internal/usecase/check_conflict"
)

// CheckConflictResponse HTTP response model
type CheckConflictResponse struct {
	Conflict            bool              `json:"conflict"`
	ConflictingBookings []BookingResponse `json:"conflictingBookings"`
	EquipmentStatus     string            `json:"equipmentStatus"`
	EquipmentAvailable  bool              `json:"equipmentAvailable"`
}

// BookingResponse пересекающееся бронирование
type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflict.Response) *CheckConflictResponse {
	result := &CheckConflictResponse{
		Conflict:            resp.Conflict,
		ConflictingBookings: make([]BookingResponse, 0, len(resp.ConflictingBookings)),
		EquipmentStatus:     resp.EquipmentStatus,
		EquipmentAvailable:  resp.EquipmentAvailable,
	}

	for _, b := range resp.ConflictingBookings {
		result.ConflictingBookings = append(result.ConflictingBookings, BookingResponse{
			ID:        b.ID,
			UserID:    b.UserID,
			StartTime: b.StartTime.Format(time.RFC3339),
			EndTime:   b.EndTime.Format(time.RFC3339),
			Status:    b.Status,
		})
	}

	return result
}

package get_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	"github.com/m04kA/gym-booking-service/internal/domain"
	getAvailability "github.com/m04kA/gym-booking-service/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	EquipmentID     string `json:"equipmentId"`
	EquipmentName   string `json:"equipmentName"`
	EquipmentStatus string `json:"equipmentStatus"`
	Bookable        bool   `json:"bookable"`
	Date            string `json:"date"`
	SlotMinutes     int    `json:"slotMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	StartTime string `json:"startTime"` // RFC3339
	EndTime   string `json:"endTime"`
	State     string `json:"state"` // free | booked
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(equipmentID, dateStr, slotMinutesStr string, loc *time.Location) (*getAvailability.Request, error) {
	date, err := handlers.ParseDate(dateStr, loc)
	if err != nil {
		return nil, err
	}

	req := &getAvailability.Request{
		EquipmentID: equipmentID,
		Date:        date,
	}

	if slotMinutesStr != "" {
		slotMinutes, err := strconv.Atoi(slotMinutesStr)
		if err != nil {
			return nil, err
		}
		req.SlotMinutes = slotMinutes
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		EquipmentID:     resp.EquipmentID,
		EquipmentName:   resp.EquipmentName,
		EquipmentStatus: resp.EquipmentStatus,
		Bookable:        resp.Bookable,
		Date:            resp.Date.Format(domain.DateFormat),
		SlotMinutes:     resp.SlotMinutes,
		Slots:           make([]Slot, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, Slot{
			StartTime: s.StartTime.Format(time.RFC3339),
			EndTime:   s.EndTime.Format(time.RFC3339),
			State:     s.State,
		})
	}

	return result
}

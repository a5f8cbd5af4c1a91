package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	"github.com/m04kA/gym-booking-service/internal/domain"
	createBooking "github.com/m04kA/gym-booking-service/internal/usecase/create_booking"
	"github.com/m04kA/gym-booking-service/pkg/types"
)

var (
	errInvalidDate    = errors.New("invalid date")
	errInvalidTime    = errors.New("invalid time")
	errInvalidWeekday = errors.New("invalid weekday")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID           string   `json:"userId,omitempty"` // если не указан, берётся из X-User-ID
	EquipmentID      string   `json:"equipmentId"`
	Date             string   `json:"date"`      // "2026-10-19" или RFC3339
	StartTime        string   `json:"startTime"` // "10:00"
	EndTime          string   `json:"endTime"`   // "11:00"
	RecurringDays    []string `json:"recurringDays,omitempty"`
	RecurringEndDate *string  `json:"recurringEndDate,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                string  `json:"id"`
	EquipmentID       string  `json:"equipmentId"`
	UserID            string  `json:"userId"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	Status            string  `json:"status"`
	Notes             *string `json:"notes,omitempty"`
	RecurrenceGroupID *string `json:"recurrenceGroupId,omitempty"`
	CreatedAt         string  `json:"createdAt"`
}

// CreateBookingResponse HTTP response model: одно бронирование на каждое вхождение
type CreateBookingResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Даты в RFC3339 приводятся к календарной дате в часовом поясе зала loc.
func (r *CreateBookingRequest) ToUseCaseRequest(userID string, loc *time.Location) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", errInvalidTime, err)
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", errInvalidTime, err)
	}

	req := &createBooking.Request{
		UserID:      userID,
		EquipmentID: r.EquipmentID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Notes:       r.Notes,
	}

	for _, name := range r.RecurringDays {
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errInvalidWeekday, name)
		}
		req.RecurringDays = append(req.RecurringDays, day)
	}

	if r.RecurringEndDate != nil {
		until, err := handlers.ParseDate(*r.RecurringEndDate, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: recurringEndDate: %v", errInvalidDate, err)
		}
		req.RecurringEndDate = &until
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{Bookings: toBookingResponses(resp.Bookings)}
}

func toBookingResponses(bookings []createBooking.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, BookingResponse{
			ID:                b.ID,
			EquipmentID:       b.EquipmentID,
			UserID:            b.UserID,
			StartTime:         b.StartTime.Format(time.RFC3339),
			EndTime:           b.EndTime.Format(time.RFC3339),
			Status:            b.Status,
			Notes:             b.Notes,
			RecurrenceGroupID: b.RecurrenceGroupID,
			CreatedAt:         b.CreatedAt.Format(time.RFC3339),
		})
	}
	return result
}

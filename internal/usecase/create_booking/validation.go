package create_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/gym-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if len(req.UserID) > domain.MaxUserIDLength {
		return fmt.Errorf("%w: userID is too long", ErrInvalidInput)
	}

	if req.EquipmentID == "" {
		return fmt.Errorf("%w: equipmentID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	// Дни и дата окончания повторения передаются только вместе
	if len(req.RecurringDays) > 0 && req.RecurringEndDate == nil {
		return fmt.Errorf("%w: recurringEndDate is required with recurringDays", ErrInvalidInput)
	}
	if len(req.RecurringDays) == 0 && req.RecurringEndDate != nil {
		return fmt.Errorf("%w: recurringDays are required with recurringEndDate", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// toDomainRequest переводит запрос в модель движка бронирования
func toDomainRequest(req *Request) *domain.BookingRequest {
	domainReq := &domain.BookingRequest{
		EquipmentID: req.EquipmentID,
		UserID:      req.UserID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Notes:       req.Notes,
	}

	if req.IsRecurring() {
		domainReq.Recurrence = &domain.RecurrenceSpec{
			DaysOfWeek: req.RecurringDays,
			UntilDate:  *req.RecurringEndDate,
		}
	}

	return domainReq
}

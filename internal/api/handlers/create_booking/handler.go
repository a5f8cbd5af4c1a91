package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	"github.com/m04kA/gym-booking-service/internal/api/middleware"
	createBooking "github.com/m04kA/gym-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD или RFC3339"
	msgInvalidTime          = "некорректный формат времени, ожидается HH:MM"
	msgInvalidWeekday       = "некорректный день недели в recurringDays"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "нельзя создать бронирование от имени другого пользователя"
	msgInvalidInput         = "некорректные данные бронирования"
	msgInvalidTimeRange     = "время начала должно быть раньше времени окончания"
	msgInvalidRecurrence    = "некорректное правило повторения"
	msgBookingInPast        = "нельзя забронировать время в прошлом"
	msgEquipmentNotFound    = "оборудование не найдено"
	msgEquipmentUnavailable = "оборудование недоступно для бронирования"
	msgBookingConflict      = "выбранное время пересекается с существующими бронированиями"
	msgEquipmentBusy        = "оборудование сейчас бронируется другим запросом, повторите попытку"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// userId в теле необязателен, но если указан - должен совпадать с заголовком
	if req.UserID != "" && req.UserID != userID {
		h.logger.Warn("POST /bookings - User mismatch: header=%s, body=%s", userID, req.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты, времени и дней недели)
	useCaseReq, err := req.ToUseCaseRequest(userID, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		switch {
		case errors.Is(err, errInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)
		case errors.Is(err, errInvalidWeekday):
			handlers.RespondBadRequest(w, msgInvalidWeekday)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBookingConflict):
			conflicting := createBooking.ConflictingBookings(err)
			h.logger.Warn("POST /bookings - Booking conflict: user_id=%s, equipment_id=%s, conflicts=%d",
				userID, req.EquipmentID, len(conflicting))
			handlers.RespondConflict(w, msgBookingConflict, toBookingResponses(conflicting))

		case errors.Is(err, createBooking.ErrEquipmentUnavailable):
			h.logger.Warn("POST /bookings - Equipment unavailable: equipment_id=%s", req.EquipmentID)
			handlers.RespondError(w, http.StatusConflict, msgEquipmentUnavailable)

		case errors.Is(err, createBooking.ErrEquipmentNotFound):
			h.logger.Warn("POST /bookings - Equipment not found: equipment_id=%s", req.EquipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrInvalidRecurrence):
			h.logger.Warn("POST /bookings - Invalid recurrence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, createBooking.ErrBookingInPast):
			h.logger.Warn("POST /bookings - Booking in the past: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgBookingInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrEquipmentBusy):
			h.logger.Warn("POST /bookings - Equipment busy: equipment_id=%s", req.EquipmentID)
			handlers.RespondServiceUnavailable(w, msgEquipmentBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, equipment_id=%s, error=%v",
				userID, req.EquipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: user_id=%s, equipment_id=%s, count=%d",
		userID, req.EquipmentID, len(response.Bookings))
	handlers.RespondJSON(w, http.StatusCreated, response)
}

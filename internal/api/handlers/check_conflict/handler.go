package check_conflict

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	checkConflict "github.com/m04kA/gym-booking-service/internal/usecase/check_conflict"
	"github.com/m04kA/gym-booking-service/pkg/types"
)

const (
	msgMissingParams     = "параметры date, startTime и endTime обязательны"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD или RFC3339"
	msgInvalidInput      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidTimeRange  = "время начала должно быть раньше времени окончания"
	msgEquipmentNotFound = "оборудование не найдено"
)

type Handler struct {
	useCase  CheckConflictUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CheckConflictUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}/conflicts
// Query params: date, startTime, endTime (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID := mux.Vars(r)["equipmentId"]
	query := r.URL.Query()

	dateStr, startStr, endStr := query.Get("date"), query.Get("startTime"), query.Get("endTime")
	if dateStr == "" || startStr == "" || endStr == "" {
		h.logger.Warn("GET /equipment/{id}/conflicts - Missing parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := handlers.ParseDate(dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/conflicts - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// формат времени проверяет use case
	result, err := h.useCase.Execute(r.Context(), &checkConflict.Request{
		EquipmentID: equipmentID,
		Date:        date,
		StartTime:   types.TimeString(startStr),
		EndTime:     types.TimeString(endStr),
	})
	if err != nil {
		switch {
		case errors.Is(err, checkConflict.ErrEquipmentNotFound):
			h.logger.Warn("GET /equipment/{id}/conflicts - Equipment not found: equipment_id=%s", equipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, checkConflict.ErrInvalidTimeRange):
			h.logger.Warn("GET /equipment/{id}/conflicts - Invalid time range: %s-%s", startStr, endStr)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, checkConflict.ErrInvalidInput):
			h.logger.Warn("GET /equipment/{id}/conflicts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /equipment/{id}/conflicts - Failed to check conflicts: equipment_id=%s, error=%v",
				equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment/{id}/conflicts - Checked: equipment_id=%s, conflict=%v, count=%d",
		equipmentID, result.Conflict, len(result.ConflictingBookings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	getAvailability "github.com/m04kA/gym-booking-service/internal/usecase/get_availability"
)

const (
	msgMissingDate       = "дата обязательна"
	msgInvalidParams     = "некорректные параметры запроса, ожидается date=YYYY-MM-DD и целое slotMinutes"
	msgInvalidInput      = "некорректные параметры сетки"
	msgInvalidSlotSize   = "сетка с указанной длиной слота не строится"
	msgEquipmentNotFound = "оборудование не найдено"
)

type Handler struct {
	useCase  GetAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}/availability
// Query params: date (required), slotMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID := mux.Vars(r)["equipmentId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /equipment/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(equipmentID, dateStr, r.URL.Query().Get("slotMinutes"), h.location)
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrEquipmentNotFound):
			h.logger.Warn("GET /equipment/{id}/availability - Equipment not found: equipment_id=%s", equipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, getAvailability.ErrInvalidSlotSize):
			h.logger.Warn("GET /equipment/{id}/availability - Invalid slot size: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotSize)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /equipment/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /equipment/{id}/availability - Failed to get availability: equipment_id=%s, error=%v",
				equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /equipment/{id}/availability - Availability retrieved: equipment_id=%s, date=%s, slots=%d",
		equipmentID, response.Date, len(response.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

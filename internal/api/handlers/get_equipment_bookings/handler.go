package get_equipment_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	"github.com/m04kA/gym-booking-service/internal/service/bookings"
)

const (
	msgInvalidParams     = "некорректные параметры запроса"
	msgEquipmentNotFound = "оборудование не найдено"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}/bookings
// Query params: date, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID := mux.Vars(r)["equipmentId"]

	serviceReq, err := ToServiceRequest(equipmentID, r, h.location)
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetEquipmentBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrEquipmentNotFound):
			h.logger.Warn("GET /equipment/{id}/bookings - Equipment not found: equipment_id=%s", equipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /equipment/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /equipment/{id}/bookings - Failed to get bookings: equipment_id=%s, error=%v",
				equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment/{id}/bookings - Bookings retrieved successfully: equipment_id=%s, count=%d",
		equipmentID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}

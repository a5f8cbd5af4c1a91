package delete_equipment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	"github.com/m04kA/gym-booking-service/internal/api/middleware"
	"github.com/m04kA/gym-booking-service/internal/service/bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "оборудование не найдено"
)

// DeleteResponse тело успешного ответа
type DeleteResponse struct {
	Success bool `json:"success"`
}

type Handler struct {
	service EquipmentService
	logger  Logger
}

func NewHandler(service EquipmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/equipment/{equipmentId}
// Вместе с оборудованием удаляются все его бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	equipmentID := mux.Vars(r)["equipmentId"]

	if err := h.service.DeleteEquipment(r.Context(), equipmentID); err != nil {
		if errors.Is(err, bookings.ErrEquipmentNotFound) {
			h.logger.Warn("DELETE /equipment/{id} - Equipment not found: equipment_id=%s", equipmentID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("DELETE /equipment/{id} - Failed to delete equipment: equipment_id=%s, error=%v", equipmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /equipment/{id} - Equipment %s deleted by user %s", equipmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, DeleteResponse{Success: true})
}

package update_equipment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	"github.com/m04kA/gym-booking-service/internal/api/middleware"
	updateStatus "github.com/m04kA/gym-booking-service/internal/usecase/update_equipment_status"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidStatus      = "некорректный статус, ожидается available, in-use, maintenance или out-of-order"
	msgInvalidInput       = "некорректные данные запроса"
	msgEquipmentNotFound  = "оборудование не найдено"
	msgActiveBookings     = "у оборудования есть предстоящие бронирования"
	msgEquipmentBusy      = "оборудование сейчас изменяется другим запросом, повторите попытку"
)

type Handler struct {
	useCase UpdateEquipmentStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateEquipmentStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/equipment/{equipmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID := mux.Vars(r)["equipmentId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /equipment/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /equipment/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(equipmentID, userID))
	if err != nil {
		switch {
		case errors.Is(err, updateStatus.ErrActiveBookings):
			blocking := updateStatus.BlockingBookings(err)
			h.logger.Warn("PATCH /equipment/{id}/status - Blocked by %d booking(s): equipment_id=%s, status=%s",
				len(blocking), equipmentID, req.Status)
			handlers.RespondConflict(w, msgActiveBookings, toBookingResponses(blocking))

		case errors.Is(err, updateStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /equipment/{id}/status - Invalid status: %s", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /equipment/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateStatus.ErrEquipmentNotFound):
			h.logger.Warn("PATCH /equipment/{id}/status - Equipment not found: equipment_id=%s", equipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, updateStatus.ErrEquipmentBusy):
			h.logger.Warn("PATCH /equipment/{id}/status - Equipment busy: equipment_id=%s", equipmentID)
			handlers.RespondServiceUnavailable(w, msgEquipmentBusy)

		default:
			h.logger.Error("PATCH /equipment/{id}/status - Failed to update status: equipment_id=%s, error=%v",
				equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /equipment/{id}/status - Status updated: equipment_id=%s, %s -> %s, user_id=%s",
		equipmentID, result.PreviousStatus, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

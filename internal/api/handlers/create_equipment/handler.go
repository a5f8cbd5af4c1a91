package create_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/gym-booking-service/internal/api/handlers"
	"github.com/m04kA/gym-booking-service/internal/api/middleware"
	"github.com/m04kA/gym-booking-service/internal/service/bookings"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные оборудования: нужны название, допустимые категория и статус"
	msgAlreadyExists      = "оборудование с таким ID уже существует"
)

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

// Handle POST /api/v1/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateEquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /equipment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	equipment, err := h.service.CreateEquipment(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /equipment - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, bookings.ErrEquipmentExists):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)
		default:
			h.logger.Error("POST /equipment - Failed to create equipment: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /equipment - Equipment %s added by user %s", equipment.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, equipment)
}

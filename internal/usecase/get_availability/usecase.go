package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/gym-booking-service/internal/domain"
	equipmentRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/equipment"
	"github.com/m04kA/gym-booking-service/internal/service/scheduling"
)

// UseCase use case для получения сетки доступности оборудования на день
type UseCase struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentRepository
	schedule      Schedule
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	schedule Schedule,
	logger Logger,
) *UseCase {
	if schedule.Location == nil {
		schedule.Location = time.UTC
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		schedule:      schedule,
		logger:        logger,
	}
}

// Execute выполняет use case получения сетки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: equipment=%s, date=%s, slotMinutes=%d",
		req.EquipmentID, req.Date.Format(domain.DateFormat), req.SlotMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = uc.schedule.SlotMinutes
	}

	// 2. Получаем оборудование
	equipment, err := uc.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			uc.logger.Warn("GetAvailability: equipment id=%s not found", req.EquipmentID)
			return nil, ErrEquipmentNotFound
		}
		uc.logger.Error("GetAvailability: failed to get equipment id=%s: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to get equipment: %w", ErrInternal, err)
	}

	// 3. Генерируем сетку слотов в часовом поясе зала
	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, uc.schedule.Location)

	slots, err := domain.GenerateSlots(day, uc.schedule.OpenHour, uc.schedule.CloseHour, slotMinutes)
	if err != nil {
		uc.logger.Warn("GetAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlotSize, err)
	}

	// 4. Получаем активные бронирования за день
	dayEnd := day.AddDate(0, 0, 1)
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		EquipmentID: &req.EquipmentID,
		From:        &day,
		To:          &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 5. Помечаем занятые слоты
	grid := scheduling.ComputeAvailability(slots, bookings)

	result := make([]Slot, len(grid))
	booked := 0
	for i, slot := range grid {
		result[i] = Slot{
			StartTime: slot.Interval.Start(),
			EndTime:   slot.Interval.End(),
			State:     string(slot.State),
		}
		if slot.IsBooked() {
			booked++
		}
	}

	uc.logger.Info("GetAvailability: equipment=%s, date=%s: %d slots, %d booked",
		req.EquipmentID, day.Format(domain.DateFormat), len(result), booked)

	return &Response{
		EquipmentID:     equipment.ID,
		EquipmentName:   equipment.Name,
		EquipmentStatus: string(equipment.Status),
		Bookable:        equipment.BookingStatus().IsAvailable(),
		Date:            day,
		SlotMinutes:     slotMinutes,
		Slots:           result,
	}, nil
}

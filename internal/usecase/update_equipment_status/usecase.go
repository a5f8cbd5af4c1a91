package update_equipment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/gym-booking-service/internal/domain"
	"github.com/m04kA/gym-booking-service/internal/infra/locker"
	equipmentRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/equipment"
	"github.com/m04kA/gym-booking-service/internal/service/scheduling"
)

const (
	resultApplied = "applied"
	resultBlocked = "blocked"
)

// UseCase use case смены статуса оборудования.
// Перевод в maintenance/out-of-order запрещен, пока есть предстоящие активные бронирования.
type UseCase struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentRepository
	locker        Locker
	txManager     TransactionManager
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		locker:        locker,
		txManager:     txManager,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет смену статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateEquipmentStatus: user=%s, equipment=%s, status=%s", req.UserID, req.EquipmentID, req.Status)

	// 1. Валидация входных данных
	if req.EquipmentID == "" {
		return nil, fmt.Errorf("%w: equipmentID is required", ErrInvalidInput)
	}
	target, err := domain.ParseEquipmentStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateEquipmentStatus: unknown status %q", req.Status)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	// 2. Блокировка оборудования: параллельное бронирование не должно проскочить между проверкой и сменой статуса
	release, err := uc.locker.Acquire(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, locker.ErrLockTimeout) {
			uc.logger.Warn("UpdateEquipmentStatus: equipment id=%s is locked by another operation", req.EquipmentID)
			return nil, ErrEquipmentBusy
		}
		uc.logger.Error("UpdateEquipmentStatus: failed to acquire lock for equipment id=%s: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %w", ErrInternal, err)
	}
	defer release()

	var (
		updated  *domain.Equipment
		previous domain.EquipmentStatus
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем оборудование с блокировкой строки
		equipment, err := uc.equipmentRepo.GetForUpdate(txCtx, req.EquipmentID)
		if err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				uc.logger.Warn("UpdateEquipmentStatus: equipment id=%s not found", req.EquipmentID)
				return ErrEquipmentNotFound
			}
			uc.logger.Error("UpdateEquipmentStatus: failed to get equipment id=%s: %v", req.EquipmentID, err)
			return fmt.Errorf("%w: failed to get equipment: %w", ErrInternal, err)
		}

		now := uc.timeProvider.Now()

		// 2.2. Активные бронирования, которые еще не закончились
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			EquipmentID: &req.EquipmentID,
			From:        &now,
		})
		if err != nil {
			uc.logger.Error("UpdateEquipmentStatus: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 2.3. Проверка: все мешающие бронирования возвращаются сразу
		if err := scheduling.CheckStatusChange(target, bookings, now); err != nil {
			blocking := scheduling.ConflictingBookings(err)
			if len(blocking) == 0 {
				return fmt.Errorf("%w: %w", ErrInternal, err)
			}
			uc.logger.Warn("UpdateEquipmentStatus: equipment id=%s has %d upcoming booking(s), status %s rejected",
				req.EquipmentID, len(blocking), target)
			uc.metrics.RecordStatusChange(string(target), resultBlocked)
			return &BlockedError{Blocking: toBookings(blocking)}
		}

		// 2.4. Сохраняем новый статус
		if err := uc.equipmentRepo.UpdateStatus(txCtx, equipment.ID, target, now); err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				return ErrEquipmentNotFound
			}
			uc.logger.Error("UpdateEquipmentStatus: failed to update equipment id=%s: %v", equipment.ID, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		previous = equipment.Status
		equipment.Status = target
		equipment.UpdatedAt = now
		updated = equipment
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.RecordStatusChange(string(target), resultApplied)
	uc.logger.Info("UpdateEquipmentStatus: equipment id=%s status %s -> %s", updated.ID, previous, target)

	return &Response{
		ID:             updated.ID,
		Name:           updated.Name,
		Category:       string(updated.Category),
		Location:       updated.Location,
		Status:         string(updated.Status),
		PreviousStatus: string(previous),
		Bookable:       updated.Bookable,
		UpdatedAt:      updated.UpdatedAt,
	}, nil
}

func toBookings(bookings []*domain.Booking) []Booking {
	result := make([]Booking, len(bookings))
	for i, b := range bookings {
		result[i] = Booking{
			ID:        b.ID,
			UserID:    b.UserID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    string(b.Status),
		}
	}
	return result
}

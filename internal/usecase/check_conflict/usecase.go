package check_conflict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/gym-booking-service/internal/domain"
	equipmentRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/equipment"
	"github.com/m04kA/gym-booking-service/internal/service/scheduling"
)

// UseCase use case проверки пересечения предлагаемого интервала с бронированиями (без записи)
type UseCase struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentRepository
	location      *time.Location
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		location:      location,
		logger:        logger,
	}
}

// Execute выполняет проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflict: equipment=%s, date=%s, time=%s-%s",
		req.EquipmentID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflict: validation failed: %v", err)
		return nil, err
	}

	// 2. Строим интервал в часовом поясе зала
	proposed, err := uc.interval(req)
	if err != nil {
		uc.logger.Warn("CheckConflict: invalid time range: %v", err)
		return nil, err
	}

	// 3. Получаем оборудование
	equipment, err := uc.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			uc.logger.Warn("CheckConflict: equipment id=%s not found", req.EquipmentID)
			return nil, ErrEquipmentNotFound
		}
		uc.logger.Error("CheckConflict: failed to get equipment id=%s: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to get equipment: %w", ErrInternal, err)
	}

	// 4. Активные бронирования, пересекающиеся с интервалом
	from, to := proposed.Start(), proposed.End()
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		EquipmentID: &req.EquipmentID,
		From:        &from,
		To:          &to,
	})
	if err != nil {
		uc.logger.Error("CheckConflict: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	result := scheduling.CheckConflict(proposed, bookings)

	conflicting := make([]Booking, len(result.Conflicting))
	for i, b := range result.Conflicting {
		conflicting[i] = Booking{
			ID:        b.ID,
			UserID:    b.UserID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    string(b.Status),
		}
	}

	uc.logger.Info("CheckConflict: equipment=%s, %s: %d conflicting booking(s)",
		req.EquipmentID, proposed, len(conflicting))

	return &Response{
		Conflict:            result.HasConflict(),
		ConflictingBookings: conflicting,
		EquipmentStatus:     string(equipment.Status),
		EquipmentAvailable:  equipment.BookingStatus().IsAvailable(),
	}, nil
}

func (uc *UseCase) interval(req *Request) (domain.TimeInterval, error) {
	start, err := req.StartTime.On(req.Date, uc.location)
	if err != nil {
		return domain.TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	end, err := req.EndTime.On(req.Date, uc.location)
	if err != nil {
		return domain.TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	interval, err := domain.NewTimeInterval(start, end)
	if err != nil {
		return domain.TimeInterval{}, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, req.StartTime, req.EndTime)
	}
	return interval, nil
}

package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/gym-booking-service/internal/domain"
	"github.com/m04kA/gym-booking-service/internal/infra/locker"
	equipmentRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/equipment"
	"github.com/m04kA/gym-booking-service/internal/service/scheduling"
)

const (
	kindSingle    = "single"
	kindRecurring = "recurring"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentRepository
	engine        BookingEngine
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
	engine BookingEngine,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		engine:        engine,
		locker:        locker,
		txManager:     txManager,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Чтение существующих бронирований, проверка конфликтов и вставка выполняются
// в одной сериализуемой транзакции со строкой оборудования, заблокированной FOR UPDATE.
// Повторяющиеся бронирования вставляются одним INSERT: либо все вхождения, либо ни одного.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, equipment=%s, date=%s, time=%s-%s, recurring=%v",
		req.UserID, req.EquipmentID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.IsRecurring())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.RecordBookingRejected("invalid_input")
		return nil, err
	}

	domainReq := toDomainRequest(req)
	from, to := uc.window(domainReq)

	// 2. Блокировка оборудования (Redis или в памяти процесса)
	release, err := uc.locker.Acquire(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, locker.ErrLockTimeout) {
			uc.logger.Warn("CreateBooking: equipment id=%s is locked by another operation", req.EquipmentID)
			uc.metrics.RecordBookingRejected("busy")
			return nil, ErrEquipmentBusy
		}
		uc.logger.Error("CreateBooking: failed to acquire lock for equipment id=%s: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %w", ErrInternal, err)
	}
	defer release()

	var created []*domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем оборудование с блокировкой строки
		equipment, err := uc.equipmentRepo.GetForUpdate(txCtx, req.EquipmentID)
		if err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				uc.logger.Warn("CreateBooking: equipment id=%s not found", req.EquipmentID)
				return ErrEquipmentNotFound
			}
			uc.logger.Error("CreateBooking: failed to get equipment id=%s: %v", req.EquipmentID, err)
			return fmt.Errorf("%w: failed to get equipment: %w", ErrInternal, err)
		}

		// 3.2. Получаем активные бронирования, пересекающиеся с окном запроса
		existing, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			EquipmentID: &req.EquipmentID,
			From:        &from,
			To:          &to,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 3.3. Проверяем статус оборудования и конфликты
		bookings, err := uc.engine.CreateBooking(domainReq, equipment.BookingStatus(), existing)
		if err != nil {
			return uc.mapEngineError(req, err)
		}

		// 3.4. Первое вхождение не должно начинаться в прошлом
		if now := uc.timeProvider.Now(); bookings[0].StartTime.Before(now) {
			uc.logger.Warn("CreateBooking: first occurrence %s is in the past", bookings[0].StartTime.Format(time.RFC3339))
			uc.metrics.RecordBookingRejected("in_past")
			return ErrBookingInPast
		}

		// 3.5. Сохраняем все вхождения одним запросом
		if err := uc.bookingRepo.CreateBatch(txCtx, bookings); err != nil {
			uc.logger.Error("CreateBooking: failed to create bookings: %v", err)
			return fmt.Errorf("%w: failed to create bookings: %w", ErrInternal, err)
		}

		created = bookings
		return nil
	})

	if err != nil {
		return nil, err
	}

	kind := kindSingle
	if req.IsRecurring() {
		kind = kindRecurring
	}
	uc.metrics.RecordBookingsCreated(kind, len(created))

	uc.logger.Info("CreateBooking: successfully created %d booking(s) for equipment id=%s, first id=%s",
		len(created), req.EquipmentID, created[0].ID)

	return &Response{Bookings: toBookings(created)}, nil
}

// window окно дат запроса в часовом поясе расписания: [date 00:00, последняя дата + 1 день)
func (uc *UseCase) window(req *domain.BookingRequest) (time.Time, time.Time) {
	loc := uc.engine.Location()

	y, m, d := req.Date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)

	last := from
	if req.Recurrence != nil {
		y, m, d = req.Recurrence.UntilDate.Date()
		if until := time.Date(y, m, d, 0, 0, 0, 0, loc); until.After(from) {
			last = until
		}
	}

	return from, last.AddDate(0, 0, 1)
}

func (uc *UseCase) mapEngineError(req *Request, err error) error {
	switch {
	case errors.Is(err, scheduling.ErrInvalidTimeRange):
		uc.logger.Warn("CreateBooking: invalid time range: %v", err)
		uc.metrics.RecordBookingRejected("invalid_time_range")
		return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)

	case errors.Is(err, scheduling.ErrEquipmentUnavailable):
		uc.logger.Warn("CreateBooking: equipment id=%s is not available: %v", req.EquipmentID, err)
		uc.metrics.RecordBookingRejected("equipment_unavailable")
		return ErrEquipmentUnavailable

	case errors.Is(err, scheduling.ErrInvalidRecurrence):
		uc.logger.Warn("CreateBooking: invalid recurrence: %v", err)
		uc.metrics.RecordBookingRejected("invalid_recurrence")
		return fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)

	case errors.Is(err, scheduling.ErrBookingConflict):
		conflicting := scheduling.ConflictingBookings(err)
		uc.logger.Warn("CreateBooking: equipment id=%s has %d conflicting booking(s)", req.EquipmentID, len(conflicting))
		uc.metrics.RecordBookingRejected("conflict")
		return &ConflictError{Conflicting: toBookings(conflicting)}

	default:
		uc.logger.Error("CreateBooking: booking engine failed: %v", err)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

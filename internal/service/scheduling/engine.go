package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/gym-booking-service/internal/domain"
)

// Engine принимает решение о создании бронирований.
// Не хранит состояния между вызовами: существующие бронирования и статус оборудования
// передает вызывающий, он же держит блокировку/транзакцию на время вызова.
type Engine struct {
	location          *time.Location
	maxRecurrenceDays int
	idGenerator       IDGenerator
	timeProvider      TimeProvider
}

// Option настраивает Engine
type Option func(*Engine)

// WithLocation часовой пояс, в котором интерпретируются дата и время запроса
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithMaxRecurrenceDays ограничение длины повторения в днях
func WithMaxRecurrenceDays(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.maxRecurrenceDays = days
		}
	}
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.idGenerator = g
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(p TimeProvider) Option {
	return func(e *Engine) {
		e.timeProvider = p
	}
}

// NewEngine создает движок с настройками по умолчанию (UTC, 180 дней, UUID)
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		location:          time.UTC,
		maxRecurrenceDays: domain.DefaultMaxRecurrenceDays,
		idGenerator:       UUIDGenerator{},
		timeProvider:      &RealTimeProvider{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location возвращает часовой пояс расписания
func (e *Engine) Location() *time.Location {
	return e.location
}

// CreateBooking проверяет запрос и возвращает бронирования для сохранения (по одному на вхождение).
//
// Порядок проверок:
//  1. startTime < endTime, иначе ErrInvalidTimeRange
//  2. статус оборудования available, иначе ErrEquipmentUnavailable (до любых проверок времени)
//  3. разворачивание повторения в интервалы в хронологическом порядке
//  4. каждый интервал проверяется против existing и уже принятых интервалов этого же запроса
//  5. при любом конфликте запрос отклоняется целиком с *ConflictError (ErrBookingConflict)
//
// existing не изменяется.
func (e *Engine) CreateBooking(
	req *domain.BookingRequest,
	equipmentStatus domain.EquipmentStatus,
	existing []*domain.Booking,
) ([]*domain.Booking, error) {
	if err := validateTimeRange(req); err != nil {
		return nil, err
	}

	if !equipmentStatus.IsAvailable() {
		return nil, fmt.Errorf("%w: status=%s", ErrEquipmentUnavailable, equipmentStatus)
	}

	intervals, err := e.Expand(req)
	if err != nil {
		return nil, err
	}

	now := e.timeProvider.Now()

	var groupID *string
	if req.IsRecurring() {
		id := e.idGenerator.NewID()
		groupID = &id
	}

	candidates := make([]*domain.Booking, 0, len(existing)+len(intervals))
	candidates = append(candidates, existing...)

	accepted := make([]*domain.Booking, 0, len(intervals))
	seen := make(map[*domain.Booking]struct{})
	var conflicting []*domain.Booking

	for _, interval := range intervals {
		result := CheckConflict(interval, candidates)
		for _, c := range result.Conflicting {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			conflicting = append(conflicting, c)
		}

		booking := &domain.Booking{
			ID:                e.idGenerator.NewID(),
			EquipmentID:       req.EquipmentID,
			UserID:            req.UserID,
			StartTime:         interval.Start(),
			EndTime:           interval.End(),
			Status:            domain.StatusConfirmed,
			Notes:             req.Notes,
			RecurrenceGroupID: groupID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		accepted = append(accepted, booking)
		candidates = append(candidates, booking)
	}

	if len(conflicting) > 0 {
		sortByStart(conflicting)
		return nil, &ConflictError{Cause: ErrBookingConflict, Bookings: conflicting}
	}

	return accepted, nil
}

// Expand разворачивает запрос в конкретные интервалы.
// Без повторения - один интервал [date+start, date+end).
// С повторением - по интервалу на каждую дату из [date, untilDate], чей день недели входит в правило.
func (e *Engine) Expand(req *domain.BookingRequest) ([]domain.TimeInterval, error) {
	if err := validateTimeRange(req); err != nil {
		return nil, err
	}

	first := e.dateOnly(req.Date)

	if !req.IsRecurring() {
		interval, err := e.intervalOn(first, req)
		if err != nil {
			return nil, err
		}
		return []domain.TimeInterval{interval}, nil
	}

	rec := req.Recurrence
	if len(rec.DaysOfWeek) == 0 {
		return nil, fmt.Errorf("%w: no days of week", ErrInvalidRecurrence)
	}

	until := e.dateOnly(rec.UntilDate)
	if until.Before(first) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidRecurrence, until.Format(domain.DateFormat), first.Format(domain.DateFormat))
	}

	if days := daysBetween(first, until); days > e.maxRecurrenceDays {
		return nil, fmt.Errorf("%w: recurrence spans %d days, limit is %d",
			ErrInvalidRecurrence, days, e.maxRecurrenceDays)
	}

	intervals := make([]domain.TimeInterval, 0)
	for d := first; !d.After(until); d = d.AddDate(0, 0, 1) {
		if !rec.Includes(d.Weekday()) {
			continue
		}
		interval, err := e.intervalOn(d, req)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}

	if len(intervals) == 0 {
		return nil, fmt.Errorf("%w: no occurrences between %s and %s",
			ErrInvalidRecurrence, first.Format(domain.DateFormat), until.Format(domain.DateFormat))
	}

	return intervals, nil
}

func (e *Engine) intervalOn(date time.Time, req *domain.BookingRequest) (domain.TimeInterval, error) {
	start, err := req.StartTime.On(date, e.location)
	if err != nil {
		return domain.TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	end, err := req.EndTime.On(date, e.location)
	if err != nil {
		return domain.TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	interval, err := domain.NewTimeInterval(start, end)
	if err != nil {
		// 02:00-03:00 в день перехода на летнее время схлопывается в пустой интервал
		return domain.TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	return interval, nil
}

// dateOnly берет календарную дату t и переносит ее в часовой пояс расписания
func (e *Engine) dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.location)
}

func validateTimeRange(req *domain.BookingRequest) error {
	start, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidTimeRange, err)
	}
	end, err := req.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidTimeRange, err)
	}
	if start >= end {
		return fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, req.StartTime, req.EndTime)
	}
	return nil
}

// daysBetween количество календарных дней между датами (без учета перевода часов)
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

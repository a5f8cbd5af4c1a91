package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/gym-booking-service/internal/domain"
	"github.com/m04kA/gym-booking-service/internal/infra/locker"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	CreateBatch(ctx context.Context, bookings []*domain.Booking) error
}

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	// GetForUpdate блокирует строку оборудования до конца транзакции
	GetForUpdate(ctx context.Context, id string) (*domain.Equipment, error)
}

// BookingEngine движок проверки конфликтов
type BookingEngine interface {
	CreateBooking(req *domain.BookingRequest, equipmentStatus domain.EquipmentStatus, existing []*domain.Booking) ([]*domain.Booking, error)
	Location() *time.Location
}

// Locker блокировка по оборудованию
type Locker interface {
	Acquire(ctx context.Context, key string) (locker.Release, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики бронирований
type Metrics interface {
	RecordBookingsCreated(kind string, count int)
	RecordBookingRejected(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package scheduling

import (
	"slices"
	"time"

	"github.com/m04kA/gym-booking-service/internal/domain"
)

// ConflictResult результат проверки предлагаемого интервала
type ConflictResult struct {
	Conflicting []*domain.Booking // все пересекающиеся активные бронирования, не только первое
}

// HasConflict возвращает true, если есть хотя бы одно пересечение
func (r ConflictResult) HasConflict() bool {
	return len(r.Conflicting) > 0
}

// CheckConflict находит все активные (confirmed/pending) бронирования, пересекающиеся с proposed.
// Отмененные и завершенные бронирования не учитываются.
func CheckConflict(proposed domain.TimeInterval, existing []*domain.Booking) ConflictResult {
	var conflicting []*domain.Booking
	for _, booking := range existing {
		if booking == nil || !booking.IsActive() {
			continue
		}
		if domain.Overlaps(proposed, booking.Interval()) {
			conflicting = append(conflicting, booking)
		}
	}
	return ConflictResult{Conflicting: conflicting}
}

// ComputeAvailability помечает каждый слот сетки как booked, если он пересекается
// с любым активным бронированием, иначе free. Порядок слотов сохраняется.
func ComputeAvailability(slots []domain.TimeInterval, existing []*domain.Booking) []domain.SlotAvailability {
	result := make([]domain.SlotAvailability, len(slots))
	for i, slot := range slots {
		state := domain.SlotFree
		if CheckConflict(slot, existing).HasConflict() {
			state = domain.SlotBooked
		}
		result[i] = domain.SlotAvailability{Interval: slot, State: state}
	}
	return result
}

// CheckStatusChange проверяет, можно ли перевести оборудование в статус target.
// Перевод в maintenance/out-of-order запрещен, пока есть активные бронирования,
// которые заканчиваются после now; в ошибке возвращаются все такие бронирования.
func CheckStatusChange(target domain.EquipmentStatus, existing []*domain.Booking, now time.Time) error {
	if !target.TakesOutOfService() {
		return nil
	}

	var blocking []*domain.Booking
	for _, booking := range existing {
		if booking == nil || !booking.IsActive() {
			continue
		}
		if booking.EndTime.After(now) {
			blocking = append(blocking, booking)
		}
	}

	if len(blocking) == 0 {
		return nil
	}

	sortByStart(blocking)
	return &ConflictError{Cause: ErrActiveBookings, Bookings: blocking}
}

func sortByStart(bookings []*domain.Booking) {
	slices.SortStableFunc(bookings, func(a, b *domain.Booking) int {
		return a.StartTime.Compare(b.StartTime)
	})
}

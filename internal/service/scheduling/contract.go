package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator генерирует идентификаторы бронирований и групп повторений
type IDGenerator interface {
	NewID() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// UUIDGenerator генерирует UUIDv4
type UUIDGenerator struct{}

// NewID возвращает новый UUID в текстовом виде
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package update_equipment_status

import "time"

// Request модель запроса смены статуса
type Request struct {
	EquipmentID string
	Status      string // available | in-use | maintenance | out-of-order
	UserID      string // кто меняет (для журнала)
}

// Response модель ответа с обновленным оборудованием
type Response struct {
	ID             string
	Name           string
	Category       string
	Location       string
	Status         string
	PreviousStatus string
	Bookable       bool
	UpdatedAt      time.Time
}

// Booking модель бронирования, мешающего смене статуса
type Booking struct {
	ID        string
	UserID    string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

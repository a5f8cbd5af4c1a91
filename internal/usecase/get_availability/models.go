package get_availability

import "time"

// Schedule рабочие часы зала, из конфигурации
type Schedule struct {
	OpenHour    int
	CloseHour   int
	SlotMinutes int
	Location    *time.Location
}

// Request модель запроса сетки доступности
type Request struct {
	EquipmentID string    // ID оборудования
	Date        time.Time // Дата (без времени)
	SlotMinutes int       // Длина слота, 0 - из конфигурации
}

// Response модель ответа: сетка слотов за день
type Response struct {
	EquipmentID     string
	EquipmentName   string
	EquipmentStatus string
	Bookable        bool // можно ли сейчас бронировать (статус available и оборудование бронируемое)
	Date            time.Time
	SlotMinutes     int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	State     string // free | booked
}

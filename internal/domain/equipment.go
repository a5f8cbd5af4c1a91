package domain

import "time"

// EquipmentStatus is owned by the equipment record
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentInUse       EquipmentStatus = "in-use"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentOutOfOrder  EquipmentStatus = "out-of-order"
)

// ParseEquipmentStatus validates a status string
func ParseEquipmentStatus(s string) (EquipmentStatus, error) {
	status := EquipmentStatus(s)
	switch status {
	case EquipmentAvailable, EquipmentInUse, EquipmentMaintenance, EquipmentOutOfOrder:
		return status, nil
	default:
		return "", ErrInvalidEquipmentStatus
	}
}

// IsAvailable returns true if new bookings may be placed
func (s EquipmentStatus) IsAvailable() bool {
	return s == EquipmentAvailable
}

// TakesOutOfService returns true for statuses that cannot coexist with upcoming bookings
func (s EquipmentStatus) TakesOutOfService() bool {
	return s == EquipmentMaintenance || s == EquipmentOutOfOrder
}

// EquipmentCategory groups equipment in the catalogue
type EquipmentCategory string

const (
	CategoryCardio      EquipmentCategory = "cardio"
	CategoryStrength    EquipmentCategory = "strength"
	CategoryFlexibility EquipmentCategory = "flexibility"
	CategoryFunctional  EquipmentCategory = "functional"
	CategoryOther       EquipmentCategory = "other"
)

// Equipment represents a piece of gym equipment
type Equipment struct {
	ID        string
	Name      string
	Category  EquipmentCategory
	Location  string
	Status    EquipmentStatus
	Bookable  bool // false = walk-in only, never reservable
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingStatus returns the status the booking engine gates on.
// Non-bookable equipment is reported as out of order.
func (e *Equipment) BookingStatus() EquipmentStatus {
	if !e.Bookable {
		return EquipmentOutOfOrder
	}
	return e.Status
}

// EquipmentFilter filter for the equipment catalogue
type EquipmentFilter struct {
	Category *EquipmentCategory
	Status   *EquipmentStatus
}

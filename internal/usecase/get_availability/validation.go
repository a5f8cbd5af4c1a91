package get_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EquipmentID == "" {
		return fmt.Errorf("%w: equipmentID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotMinutes < 0 {
		return fmt.Errorf("%w: slotMinutes must not be negative", ErrInvalidInput)
	}

	return nil
}

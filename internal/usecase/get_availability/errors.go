package get_availability

import "errors"

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("get_availability: equipment not found")

	// ErrInvalidSlotSize возвращается, когда сетка с указанной длиной слота не строится
	ErrInvalidSlotSize = errors.New("get_availability: invalid slot size")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)

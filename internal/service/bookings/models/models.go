package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/gym-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidCategory возвращается при некорректной категории оборудования
	ErrInvalidCategory = errors.New("invalid equipment category")

	// ErrInvalidName возвращается при пустом или слишком длинном названии оборудования
	ErrInvalidName = errors.New("invalid equipment name")
)

// MaxEquipmentNameLength максимальная длина названия оборудования
const MaxEquipmentNameLength = 200

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             string  `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID      string  `json:"userId"`
	RequesterID string  `json:"-"` // пользователь из X-User-ID
	Status      *string `json:"status,omitempty"`
}

// GetEquipmentBookingsRequest запрос на получение расписания оборудования
type GetEquipmentBookingsRequest struct {
	EquipmentID     string     `json:"equipmentId"`
	Date            *time.Time `json:"date,omitempty"`            // Календарная дата (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ListEquipmentRequest запрос на получение каталога оборудования
type ListEquipmentRequest struct {
	Category *string `json:"category,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// CreateEquipmentRequest запрос на добавление оборудования в каталог
type CreateEquipmentRequest struct {
	ID       string `json:"id,omitempty"` // Генерируется, если не задан
	Name     string `json:"name"`
	Category string `json:"category,omitempty"` // По умолчанию other
	Location string `json:"location,omitempty"`
	Status   string `json:"status,omitempty"`   // По умолчанию available
	Bookable *bool  `json:"bookable,omitempty"` // По умолчанию true
}

// ToDomain конвертирует request в domain модель без ID и временных меток
func (r *CreateEquipmentRequest) ToDomain() (*domain.Equipment, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" || len(name) > MaxEquipmentNameLength {
		return nil, ErrInvalidName
	}

	e := &domain.Equipment{
		ID:       strings.TrimSpace(r.ID),
		Name:     name,
		Category: domain.CategoryOther,
		Location: strings.TrimSpace(r.Location),
		Status:   domain.EquipmentAvailable,
		Bookable: true,
	}

	if r.Category != "" {
		category, err := ToDomainCategory(r.Category)
		if err != nil {
			return nil, err
		}
		e.Category = category
	}

	if r.Status != "" {
		status, err := domain.ParseEquipmentStatus(r.Status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		e.Status = status
	}

	if r.Bookable != nil {
		e.Bookable = *r.Bookable
	}

	return e, nil
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListEquipmentRequest) ToDomainFilter() (domain.EquipmentFilter, error) {
	var filter domain.EquipmentFilter

	if r.Category != nil {
		category, err := ToDomainCategory(*r.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &category
	}

	if r.Status != nil {
		status, err := domain.ParseEquipmentStatus(*r.Status)
		if err != nil {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                string    `json:"id"`
	EquipmentID       string    `json:"equipmentId"`
	UserID            string    `json:"userId"`
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	Status            string    `json:"status"`
	Notes             *string   `json:"notes,omitempty"`
	RecurrenceGroupID *string   `json:"recurrenceGroupId,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// EquipmentResponse ответ с данными оборудования
type EquipmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status"`
	Bookable  bool      `json:"bookable"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EquipmentListResponse ответ со списком оборудования
type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO.
// Статус отдаётся эффективный: активное бронирование, которое уже закончилось, показывается как completed
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		EquipmentID:        b.EquipmentID,
		UserID:             b.UserID,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.EffectiveStatus(now)),
		Notes:              b.Notes,
		RecurrenceGroupID:  b.RecurrenceGroupID,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainEquipment конвертирует domain модель оборудования в DTO
func FromDomainEquipment(e *domain.Equipment) *EquipmentResponse {
	if e == nil {
		return nil
	}

	return &EquipmentResponse{
		ID:        e.ID,
		Name:      e.Name,
		Category:  string(e.Category),
		Location:  e.Location,
		Status:    string(e.Status),
		Bookable:  e.Bookable,
		UpdatedAt: e.UpdatedAt,
	}
}

// FromDomainEquipmentList конвертирует список оборудования в DTO
func FromDomainEquipmentList(items []*domain.Equipment) *EquipmentListResponse {
	resp := &EquipmentListResponse{
		Equipment: make([]EquipmentResponse, 0, len(items)),
	}

	for _, item := range items {
		if itemResp := FromDomainEquipment(item); itemResp != nil {
			resp.Equipment = append(resp.Equipment, *itemResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, err := domain.ParseBookingStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainCategory конвертирует строку в domain.EquipmentCategory с валидацией
func ToDomainCategory(category string) (domain.EquipmentCategory, error) {
	c := domain.EquipmentCategory(category)

	validCategories := []domain.EquipmentCategory{
		domain.CategoryCardio,
		domain.CategoryStrength,
		domain.CategoryFlexibility,
		domain.CategoryFunctional,
		domain.CategoryOther,
	}

	for _, valid := range validCategories {
		if c == valid {
			return c, nil
		}
	}

	return "", ErrInvalidCategory
}

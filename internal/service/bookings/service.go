package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/gym-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/equipment"
	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований и чтения каталога оборудования
type Service struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentRepository
	location      *time.Location
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// location - часовой пояс расписания, в нём считаются границы календарных дат
func NewService(
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}

	return &Service{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		location:      location,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований пользователя, новые первыми.
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%s requested bookings of user=%s", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.BookingsFilter{
		UserID:          &req.UserID,
		IncludeInactive: true,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// GetEquipmentBookings получает расписание оборудования.
// По умолчанию только активные бронирования; с Date - только пересекающиеся с этой датой
func (s *Service) GetEquipmentBookings(ctx context.Context, req *models.GetEquipmentBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetEquipmentBookings: fetching bookings for equipment=%s, date=%v, includeInactive=%v",
		req.EquipmentID, req.Date, req.IncludeInactive)

	if req.EquipmentID == "" {
		return nil, fmt.Errorf("%w: equipmentId is required", ErrInvalidInput)
	}

	if _, err := s.getEquipment(ctx, "GetEquipmentBookings", req.EquipmentID); err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{
		EquipmentID:     &req.EquipmentID,
		IncludeInactive: req.IncludeInactive,
	}

	if req.Date != nil {
		y, m, d := req.Date.Date()
		from := time.Date(y, m, d, 0, 0, 0, 0, s.location)
		to := from.AddDate(0, 0, 1)
		filter.From = &from
		filter.To = &to
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetEquipmentBookings: repository error for equipment=%s: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: GetEquipmentBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEquipmentBookings: successfully fetched %d bookings for equipment=%s", len(bookings), req.EquipmentID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// Cancel отменяет бронирование.
// Отменить можно только своё бронирование в статусе confirmed или pending
func (s *Service) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, req.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	now := s.timeProvider.Now()
	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason, now); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrCannotCancel):
			// статус изменился между чтением и обновлением
			s.logger.Warn("Cancel: booking id=%s is no longer active", bookingID)
			return nil, ErrCannotCancel
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	booking.CancellationReason = req.CancellationReason
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return models.FromDomainBooking(booking, now), nil
}

// ListEquipment получает каталог оборудования с опциональной фильтрацией по категории и статусу
func (s *Service) ListEquipment(ctx context.Context, req *models.ListEquipmentRequest) (*models.EquipmentListResponse, error) {
	s.logger.Info("ListEquipment: fetching equipment, category=%v, status=%v", req.Category, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListEquipment: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.equipmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListEquipment: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListEquipment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListEquipment: successfully fetched %d items", len(items))
	return models.FromDomainEquipmentList(items), nil
}

// GetEquipment получает оборудование по ID
func (s *Service) GetEquipment(ctx context.Context, id string) (*models.EquipmentResponse, error) {
	equipment, err := s.getEquipment(ctx, "GetEquipment", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainEquipment(equipment), nil
}

// CreateEquipment добавляет оборудование в каталог.
// ID генерируется, если не передан
func (s *Service) CreateEquipment(ctx context.Context, req *models.CreateEquipmentRequest) (*models.EquipmentResponse, error) {
	s.logger.Info("CreateEquipment: adding equipment name=%q, category=%q", req.Name, req.Category)

	equipment, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("CreateEquipment: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if equipment.ID == "" {
		equipment.ID = uuid.NewString()
	}
	now := s.timeProvider.Now()
	equipment.CreatedAt = now
	equipment.UpdatedAt = now

	if err := s.equipmentRepo.Create(ctx, equipment); err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentExists) {
			s.logger.Warn("CreateEquipment: equipment id=%s already exists", equipment.ID)
			return nil, ErrEquipmentExists
		}
		s.logger.Error("CreateEquipment: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateEquipment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateEquipment: equipment id=%s added", equipment.ID)
	return models.FromDomainEquipment(equipment), nil
}

// DeleteEquipment удаляет оборудование вместе со всеми его бронированиями
func (s *Service) DeleteEquipment(ctx context.Context, id string) error {
	s.logger.Info("DeleteEquipment: deleting equipment id=%s", id)

	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("DeleteEquipment: equipment id=%s not found", id)
			return ErrEquipmentNotFound
		}
		s.logger.Error("DeleteEquipment: repository error for equipment id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteEquipment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteEquipment: equipment id=%s deleted", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getEquipment(ctx context.Context, op string, id string) (*domain.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("%s: equipment id=%s not found", op, id)
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("%s: repository error for equipment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return equipment, nil
}

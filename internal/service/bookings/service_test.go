package bookings

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gym-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/gym-booking-service/internal/infra/storage/equipment"
	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
	"github.com/m04kA/gym-booking-service/pkg/logger"
	"github.com/m04kA/gym-booking-service/pkg/ptr"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id string, reason *string, cancelledAt time.Time) error {
	return m.Called(ctx, id, reason, cancelledAt).Error(0)
}

type mockEquipmentRepo struct {
	mock.Mock
}

func (m *mockEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) List(ctx context.Context, filter domain.EquipmentFilter) ([]*domain.Equipment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) Create(ctx context.Context, e *domain.Equipment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEquipmentRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

func newService(bookings *mockBookingRepo, equipment *mockEquipmentRepo) *Service {
	svc := NewService(bookings, equipment, time.UTC, logger.NewWithWriter(io.Discard, logger.LevelInfo))
	svc.timeProvider = fixedTime{}
	return svc
}

func upcoming(id, userID string) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		EquipmentID: "eq-1",
		UserID:      userID,
		StartTime:   now.Add(2 * time.Hour),
		EndTime:     now.Add(3 * time.Hour),
		Status:      domain.StatusConfirmed,
	}
}

func TestGetByID(t *testing.T) {
	t.Run("owner sees booking", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		bookings.On("GetByID", mock.Anything, "b1").Return(upcoming("b1", "u1"), nil)

		resp, err := newService(bookings, &mockEquipmentRepo{}).GetByID(context.Background(), "b1", "u1")
		require.NoError(t, err)
		assert.Equal(t, "b1", resp.ID)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("ended booking is reported as completed", func(t *testing.T) {
		past := upcoming("b1", "u1")
		past.StartTime = now.Add(-2 * time.Hour)
		past.EndTime = now.Add(-time.Hour)

		bookings := &mockBookingRepo{}
		bookings.On("GetByID", mock.Anything, "b1").Return(past, nil)

		resp, err := newService(bookings, &mockEquipmentRepo{}).GetByID(context.Background(), "b1", "u1")
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, domain.StatusConfirmed, past.Status)
	})

	t.Run("other user is denied", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		bookings.On("GetByID", mock.Anything, "b1").Return(upcoming("b1", "u1"), nil)

		_, err := newService(bookings, &mockEquipmentRepo{}).GetByID(context.Background(), "b1", "u2")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		bookings.On("GetByID", mock.Anything, "b9").Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := newService(bookings, &mockEquipmentRepo{}).GetByID(context.Background(), "b9", "u1")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels active booking", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		reason := ptr.Ptr("injury")
		bookings.On("GetByID", mock.Anything, "b1").Return(upcoming("b1", "u1"), nil)
		bookings.On("Cancel", mock.Anything, "b1", reason, now).Return(nil)

		resp, err := newService(bookings, &mockEquipmentRepo{}).Cancel(context.Background(), "b1",
			&models.CancelBookingRequest{UserID: "u1", CancellationReason: reason})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		require.NotNil(t, resp.CancelledAt)
		assert.Equal(t, now.Format(time.RFC3339), *resp.CancelledAt)
		bookings.AssertExpectations(t)
	})

	t.Run("cancelled booking cannot be cancelled again", func(t *testing.T) {
		cancelled := upcoming("b1", "u1")
		cancelled.Status = domain.StatusCancelled

		bookings := &mockBookingRepo{}
		bookings.On("GetByID", mock.Anything, "b1").Return(cancelled, nil)

		_, err := newService(bookings, &mockEquipmentRepo{}).Cancel(context.Background(), "b1",
			&models.CancelBookingRequest{UserID: "u1"})
		assert.ErrorIs(t, err, ErrCannotCancel)
		bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent status change", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		bookings.On("GetByID", mock.Anything, "b1").Return(upcoming("b1", "u1"), nil)
		bookings.On("Cancel", mock.Anything, "b1", (*string)(nil), now).Return(bookingRepo.ErrCannotCancel)

		_, err := newService(bookings, &mockEquipmentRepo{}).Cancel(context.Background(), "b1",
			&models.CancelBookingRequest{UserID: "u1"})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("other user is denied", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		bookings.On("GetByID", mock.Anything, "b1").Return(upcoming("b1", "u1"), nil)

		_, err := newService(bookings, &mockEquipmentRepo{}).Cancel(context.Background(), "b1",
			&models.CancelBookingRequest{UserID: "u2"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetUserBookings(t *testing.T) {
	t.Run("status filter", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		bookings.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
			return *f.UserID == "u1" && f.Status != nil && *f.Status == domain.StatusPending && f.EquipmentID == nil
		})).Return([]*domain.Booking{upcoming("b1", "u1")}, nil)

		resp, err := newService(bookings, &mockEquipmentRepo{}).GetUserBookings(context.Background(),
			&models.GetUserBookingsRequest{UserID: "u1", RequesterID: "u1", Status: ptr.Ptr("pending")})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("empty history is an empty list", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

		resp, err := newService(bookings, &mockEquipmentRepo{}).GetUserBookings(context.Background(),
			&models.GetUserBookingsRequest{UserID: "u1", RequesterID: "u1"})
		require.NoError(t, err)
		assert.NotNil(t, resp.Bookings)
		assert.Empty(t, resp.Bookings)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := newService(&mockBookingRepo{}, &mockEquipmentRepo{}).GetUserBookings(context.Background(),
			&models.GetUserBookingsRequest{UserID: "u1", RequesterID: "u1", Status: ptr.Ptr("done")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign history is denied", func(t *testing.T) {
		_, err := newService(&mockBookingRepo{}, &mockEquipmentRepo{}).GetUserBookings(context.Background(),
			&models.GetUserBookingsRequest{UserID: "u1", RequesterID: "u2"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetEquipmentBookings(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	bookings := &mockBookingRepo{}
	equipment := &mockEquipmentRepo{}
	equipment.On("GetByID", mock.Anything, "eq-1").Return(&domain.Equipment{ID: "eq-1"}, nil)

	dayStart := time.Date(2026, time.October, 19, 0, 0, 0, 0, berlin)
	bookings.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return *f.EquipmentID == "eq-1" && f.From.Equal(dayStart) && f.To.Equal(dayStart.AddDate(0, 0, 1)) && f.IncludeInactive
	})).Return([]*domain.Booking{upcoming("b1", "u1"), upcoming("b2", "u2")}, nil)

	svc := NewService(bookings, equipment, berlin, logger.NewWithWriter(io.Discard, logger.LevelInfo))
	svc.timeProvider = fixedTime{}

	date := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetEquipmentBookings(context.Background(), &models.GetEquipmentBookingsRequest{
		EquipmentID: "eq-1", Date: &date, IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	bookings.AssertExpectations(t)

	t.Run("unknown equipment", func(t *testing.T) {
		equipment := &mockEquipmentRepo{}
		equipment.On("GetByID", mock.Anything, "eq-x").Return(nil, equipmentRepo.ErrEquipmentNotFound)

		_, err := newService(&mockBookingRepo{}, equipment).GetEquipmentBookings(context.Background(),
			&models.GetEquipmentBookingsRequest{EquipmentID: "eq-x"})
		assert.ErrorIs(t, err, ErrEquipmentNotFound)
	})
}

func TestListEquipment(t *testing.T) {
	equipment := &mockEquipmentRepo{}
	equipment.On("List", mock.Anything, mock.MatchedBy(func(f domain.EquipmentFilter) bool {
		return f.Category != nil && *f.Category == domain.CategoryCardio && f.Status == nil
	})).Return([]*domain.Equipment{
		{ID: "eq-1", Name: "Treadmill", Category: domain.CategoryCardio, Status: domain.EquipmentAvailable, Bookable: true},
	}, nil)

	svc := newService(&mockBookingRepo{}, equipment)

	resp, err := svc.ListEquipment(context.Background(), &models.ListEquipmentRequest{Category: ptr.Ptr("cardio")})
	require.NoError(t, err)
	require.Len(t, resp.Equipment, 1)
	assert.Equal(t, "Treadmill", resp.Equipment[0].Name)
	assert.True(t, resp.Equipment[0].Bookable)

	_, err = svc.ListEquipment(context.Background(), &models.ListEquipmentRequest{Category: ptr.Ptr("yoga")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListEquipment(context.Background(), &models.ListEquipmentRequest{Status: ptr.Ptr("broken")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetEquipment(t *testing.T) {
	equipment := &mockEquipmentRepo{}
	equipment.On("GetByID", mock.Anything, "eq-1").Return(&domain.Equipment{ID: "eq-1", Name: "Bench"}, nil)
	equipment.On("GetByID", mock.Anything, "eq-2").Return(nil, errors.New("connection reset"))

	svc := newService(&mockBookingRepo{}, equipment)

	resp, err := svc.GetEquipment(context.Background(), "eq-1")
	require.NoError(t, err)
	assert.Equal(t, "Bench", resp.Name)

	_, err = svc.GetEquipment(context.Background(), "eq-2")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCreateEquipment_Defaults(t *testing.T) {
	equipment := &mockEquipmentRepo{}
	equipment.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Equipment) bool {
		return e.ID != "" &&
			e.Name == "Rowing machine" &&
			e.Category == domain.CategoryOther &&
			e.Status == domain.EquipmentAvailable &&
			e.Bookable &&
			e.CreatedAt.Equal(now)
	})).Return(nil)

	resp, err := newService(&mockBookingRepo{}, equipment).CreateEquipment(context.Background(), &models.CreateEquipmentRequest{Name: "  Rowing machine "})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "other", resp.Category)
	assert.True(t, resp.Bookable)
	equipment.AssertExpectations(t)
}

func TestCreateEquipment_ExplicitFields(t *testing.T) {
	equipment := &mockEquipmentRepo{}
	equipment.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Equipment) bool {
		return e.ID == "eq-9" && e.Category == domain.CategoryCardio && e.Status == domain.EquipmentMaintenance && !e.Bookable
	})).Return(nil)

	resp, err := newService(&mockBookingRepo{}, equipment).CreateEquipment(context.Background(), &models.CreateEquipmentRequest{
		ID:       "eq-9",
		Name:     "Bike",
		Category: "cardio",
		Status:   "maintenance",
		Bookable: ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "eq-9", resp.ID)
	assert.Equal(t, "maintenance", resp.Status)
}

func TestCreateEquipment_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.CreateEquipmentRequest
		repoErr error
		wantErr error
	}{
		{name: "пустое название", req: &models.CreateEquipmentRequest{Name: "   "}, wantErr: ErrInvalidInput},
		{name: "неизвестная категория", req: &models.CreateEquipmentRequest{Name: "Rack", Category: "yoga"}, wantErr: ErrInvalidInput},
		{name: "неизвестный статус", req: &models.CreateEquipmentRequest{Name: "Rack", Status: "broken"}, wantErr: ErrInvalidInput},
		{name: "дубликат ID", req: &models.CreateEquipmentRequest{ID: "eq-1", Name: "Rack"}, repoErr: equipmentRepo.ErrEquipmentExists, wantErr: ErrEquipmentExists},
		{name: "ошибка БД", req: &models.CreateEquipmentRequest{Name: "Rack"}, repoErr: errors.New("db down"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equipment := &mockEquipmentRepo{}
			equipment.On("Create", mock.Anything, mock.Anything).Return(tt.repoErr)

			_, err := newService(&mockBookingRepo{}, equipment).CreateEquipment(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.repoErr == nil {
				equipment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDeleteEquipment(t *testing.T) {
	equipment := &mockEquipmentRepo{}
	equipment.On("Delete", mock.Anything, "eq-1").Return(nil)
	equipment.On("Delete", mock.Anything, "missing").Return(equipmentRepo.ErrEquipmentNotFound)
	equipment.On("Delete", mock.Anything, "eq-2").Return(errors.New("db down"))
	svc := newService(&mockBookingRepo{}, equipment)

	assert.NoError(t, svc.DeleteEquipment(context.Background(), "eq-1"))
	assert.ErrorIs(t, svc.DeleteEquipment(context.Background(), "missing"), ErrEquipmentNotFound)
	assert.ErrorIs(t, svc.DeleteEquipment(context.Background(), "eq-2"), ErrInternal)
}

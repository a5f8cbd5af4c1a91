package get_user_bookings

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gym-booking-service/internal/api/middleware"
	"github.com/m04kA/gym-booking-service/internal/service/bookings"
	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
	"github.com/m04kA/gym-booking-service/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

func serve(svc *mockService, target, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/users/{userId}/bookings", NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelInfo)).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.UserIDHeader, userID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("GetUserBookings", mock.Anything, mock.MatchedBy(func(r *models.GetUserBookingsRequest) bool {
		return r.UserID == "u1" && r.RequesterID == "u1" && r.Status != nil && *r.Status == "confirmed"
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: "b2"}, {ID: "b1"}}}, nil)

	rec := serve(svc, "/users/u1/bookings?status=confirmed", "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "b2", body[0].ID)
}

func TestHandle_Errors(t *testing.T) {
	svc := &mockService{}
	svc.On("GetUserBookings", mock.Anything, mock.MatchedBy(func(r *models.GetUserBookingsRequest) bool {
		return r.RequesterID == "u2"
	})).Return(nil, bookings.ErrAccessDenied)
	svc.On("GetUserBookings", mock.Anything, mock.MatchedBy(func(r *models.GetUserBookingsRequest) bool {
		return r.RequesterID == "u1"
	})).Return(nil, bookings.ErrInvalidInput)

	assert.Equal(t, http.StatusForbidden, serve(svc, "/users/u1/bookings", "u2").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "/users/u1/bookings?status=done", "u1").Code)
}

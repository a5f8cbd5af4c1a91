package create_equipment

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/gym-booking-service/internal/api/middleware"
	"github.com/m04kA/gym-booking-service/internal/service/bookings"
	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
	"github.com/m04kA/gym-booking-service/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateEquipment(ctx context.Context, req *models.CreateEquipmentRequest) (*models.EquipmentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EquipmentResponse), args.Error(1)
}

func serve(svc *mockService, body, userID string) *httptest.ResponseRecorder {
	h := middleware.Auth(http.HandlerFunc(NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelInfo)).Handle))

	req := httptest.NewRequest(http.MethodPost, "/equipment", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &mockService{}
	svc.On("CreateEquipment", mock.Anything, mock.MatchedBy(func(req *models.CreateEquipmentRequest) bool {
		return req.Name == "Rowing machine" && req.Category == "cardio" && req.Bookable != nil && !*req.Bookable
	})).Return(&models.EquipmentResponse{ID: "eq-9", Name: "Rowing machine", Category: "cardio", Status: "available"}, nil)

	rec := serve(svc, `{"name":"Rowing machine","category":"cardio","bookable":false}`, "staff-1")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"eq-9"`)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     string
		serviceErr error
		wantStatus int
	}{
		{name: "без пользователя", body: `{"name":"Rack"}`, wantStatus: http.StatusUnauthorized},
		{name: "битый JSON", body: `{"name":`, userID: "staff-1", wantStatus: http.StatusBadRequest},
		{name: "лишнее поле", body: `{"name":"Rack","price":10}`, userID: "staff-1", wantStatus: http.StatusBadRequest},
		{name: "невалидные данные", body: `{"name":""}`, userID: "staff-1", serviceErr: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "дубликат", body: `{"id":"eq-1","name":"Rack"}`, userID: "staff-1", serviceErr: bookings.ErrEquipmentExists, wantStatus: http.StatusConflict},
		{name: "ошибка сервиса", body: `{"name":"Rack"}`, userID: "staff-1", serviceErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("CreateEquipment", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)

			assert.Equal(t, tt.wantStatus, serve(svc, tt.body, tt.userID).Code)
		})
	}
}

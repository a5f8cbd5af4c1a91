package delete_equipment

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/gym-booking-service/internal/api/middleware"
	"github.com/m04kA/gym-booking-service/internal/service/bookings"
	"github.com/m04kA/gym-booking-service/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) DeleteEquipment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func serve(svc *mockService, id, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/equipment/{equipmentId}", NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelInfo)).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/equipment/"+id, nil)
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("DeleteEquipment", mock.Anything, "eq-1").Return(nil)
	svc.On("DeleteEquipment", mock.Anything, "eq-x").Return(bookings.ErrEquipmentNotFound)
	svc.On("DeleteEquipment", mock.Anything, "eq-e").Return(errors.New("db down"))

	rec := serve(svc, "eq-1", "staff-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(svc, "eq-x", "staff-1").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(svc, "eq-e", "staff-1").Code)
}

func TestHandle_RequiresUser(t *testing.T) {
	svc := &mockService{}

	assert.Equal(t, http.StatusUnauthorized, serve(svc, "eq-1", "").Code)
	svc.AssertNotCalled(t, "DeleteEquipment", mock.Anything, mock.Anything)
}

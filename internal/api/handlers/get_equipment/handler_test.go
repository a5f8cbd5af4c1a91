package get_equipment

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

	"github.com/m04kA/gym-booking-service/internal/service/bookings"
	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
	"github.com/m04kA/gym-booking-service/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetEquipment(ctx context.Context, id string) (*models.EquipmentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EquipmentResponse), args.Error(1)
}

func serve(svc *mockService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/equipment/{equipmentId}", NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelInfo)).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("GetEquipment", mock.Anything, "eq-1").Return(&models.EquipmentResponse{ID: "eq-1", Status: "available", Bookable: true}, nil)
	svc.On("GetEquipment", mock.Anything, "eq-x").Return(nil, bookings.ErrEquipmentNotFound)
	svc.On("GetEquipment", mock.Anything, "eq-e").Return(nil, errors.New("timeout"))

	rec := serve(svc, "/equipment/eq-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookable":true`)

	assert.Equal(t, http.StatusNotFound, serve(svc, "/equipment/eq-x").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(svc, "/equipment/eq-e").Code)
}

package check_conflict

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	checkConflict "github.com/m04kA/gym-booking-service/internal/usecase/check_conflict"
	"github.com/m04kA/gym-booking-service/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *checkConflict.Request) (*checkConflict.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkConflict.Response), args.Error(1)
}

func serve(uc *mockUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/equipment/{equipmentId}/conflicts",
		NewHandler(uc, time.UTC, logger.NewWithWriter(io.Discard, logger.LevelInfo)).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Conflict(t *testing.T) {
	start := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *checkConflict.Request) bool {
		return r.EquipmentID == "eq-1" && r.StartTime == "10:00" && r.EndTime == "11:00" && r.Date.Day() == 19
	})).Return(&checkConflict.Response{
		Conflict: true,
		ConflictingBookings: []checkConflict.Booking{
			{ID: "b1", UserID: "u2", StartTime: start, EndTime: start.Add(time.Hour), Status: "confirmed"},
		},
		EquipmentStatus:    "available",
		EquipmentAvailable: true,
	}, nil)

	rec := serve(uc, "/equipment/eq-1/conflicts?date=2026-10-19&startTime=10:00&endTime=11:00")
	require.Equal(t, http.StatusOK, rec.Code)

	var body CheckConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Conflict)
	require.Len(t, body.ConflictingBookings, 1)
	assert.Equal(t, "b1", body.ConflictingBookings[0].ID)
}

func TestHandle_NoConflictReturnsEmptyList(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&checkConflict.Response{EquipmentStatus: "available", EquipmentAvailable: true}, nil)

	rec := serve(uc, "/equipment/eq-1/conflicts?date=2026-10-19&startTime=10:00&endTime=11:00")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"conflictingBookings":[]`)
}

func TestHandle_Errors(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *checkConflict.Request) bool { return r.EquipmentID == "eq-x" })).
		Return(nil, checkConflict.ErrEquipmentNotFound)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *checkConflict.Request) bool { return r.EquipmentID == "eq-1" })).
		Return(nil, checkConflict.ErrInvalidTimeRange)

	assert.Equal(t, http.StatusBadRequest, serve(uc, "/equipment/eq-1/conflicts?date=2026-10-19").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/equipment/eq-1/conflicts?date=soon&startTime=10:00&endTime=11:00").Code)
	assert.Equal(t, http.StatusNotFound, serve(uc, "/equipment/eq-x/conflicts?date=2026-10-19&startTime=10:00&endTime=11:00").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/equipment/eq-1/conflicts?date=2026-10-19&startTime=11:00&endTime=10:00").Code)
}

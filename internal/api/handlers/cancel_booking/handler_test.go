package cancel_booking

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/gym-booking-service/internal/api/middleware"
	"github.com/m04kA/gym-booking-service/internal/service/bookings"
	"github.com/m04kA/gym-booking-service/internal/service/bookings/models"
	"github.com/m04kA/gym-booking-service/pkg/logger"
)

const bookingID = "3b241101-e2bb-4255-8caf-4136c566a962"

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(svc *mockService, body string) *httptest.ResponseRecorder {
	return serveID(svc, bookingID, body)
}

func serveID(svc *mockService, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelInfo)).Handle)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPatch, "/bookings/"+id+"/cancel", nil)
	} else {
		req = httptest.NewRequest(http.MethodPatch, "/bookings/"+id+"/cancel", strings.NewReader(body))
	}
	req.Header.Set(middleware.UserIDHeader, "u1")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, bookingID, mock.MatchedBy(func(r *models.CancelBookingRequest) bool {
		return r.UserID == "u1" && r.CancellationReason != nil && *r.CancellationReason == "sick"
	})).Return(&models.BookingResponse{ID: "b1", Status: "cancelled"}, nil)

	rec := serve(svc, `{"cancellationReason":"sick"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, bookingID, &models.CancelBookingRequest{UserID: "u1"}).
		Return(&models.BookingResponse{ID: "b1", Status: "cancelled"}, nil)

	assert.Equal(t, http.StatusOK, serve(svc, "").Code)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"not owner", bookings.ErrAccessDenied, http.StatusForbidden},
		{"already cancelled", bookings.ErrCannotCancel, http.StatusBadRequest},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Cancel", mock.Anything, bookingID, mock.Anything).Return(nil, tc.err)
			assert.Equal(t, tc.status, serve(svc, "").Code)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		svc := &mockService{}
		assert.Equal(t, http.StatusBadRequest, serve(svc, `{"cancellationReason":`).Code)
		svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandle_MalformedID(t *testing.T) {
	svc := &mockService{}

	rec := serveID(svc, "abc", `{"cancellationReason":"sick"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "UUID")
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

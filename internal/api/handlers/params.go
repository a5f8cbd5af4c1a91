package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/gym-booking-service/internal/domain"
)

var (
	// ErrInvalidDate возвращается, когда дата не в формате YYYY-MM-DD или RFC3339
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD or RFC3339")

	// ErrInvalidBookingID возвращается, когда ID бронирования не UUID
	ErrInvalidBookingID = errors.New("invalid booking id, expected UUID")
)

// BookingIDVar достает {bookingId} из пути. ID бронирований - UUID, в каноническом виде
func BookingIDVar(r *http.Request) (string, error) {
	id, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		return "", ErrInvalidBookingID
	}
	return id.String(), nil
}

// ParseDate разбирает календарную дату.
// RFC3339 (фронтенд шлёт toISOString() в UTC) сначала переводится в loc, затем время отбрасывается.
// Результат - полночь UTC выбранной даты; nil loc означает UTC.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if d, err := time.Parse(domain.DateFormat, s); err == nil {
		return d, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// QueryDate опциональный параметр даты: nil, если параметр не передан
func QueryDate(r *http.Request, name string, loc *time.Location) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	d, err := ParseDate(raw, loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// QueryBool опциональный булевый параметр, по умолчанию false
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// QueryString опциональный строковый параметр: nil, если параметр не передан
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

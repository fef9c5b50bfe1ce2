package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ArtistScheduling/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/logger"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func newRequest(t *testing.T, body string, userID int64) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

const validBody = `{"artistId":7,"appointmentDate":"2024-03-15","startTime":"10:00","durationMinutes":90}`

func TestHandle_Created(t *testing.T) {
	created := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:              42,
		CustomerID:      3,
		ArtistID:        7,
		AppointmentDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("10:00"),
		EndTime:         types.MustTimeString("11:30"),
		DurationMinutes: 90,
		Status:          "pending",
		Amount:          500,
		CreatedAt:       created,
		UpdatedAt:       created,
	}}
	h := NewHandler(uc, logger.Nop())

	rr := httptest.NewRecorder()
	h.Handle(rr, newRequest(t, validBody, 3))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.CustomerID)
	assert.Equal(t, int64(7), uc.got.ArtistID)
	assert.Equal(t, types.TimeString("10:00"), uc.got.StartTime)
	assert.Nil(t, uc.got.EndTime)
	assert.Equal(t, 90, uc.got.DurationMinutes)

	var out BookingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "2024-03-15", out.AppointmentDate)
	assert.Equal(t, "11:30", out.EndTime)
	assert.Equal(t, "pending", out.Status)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID int64
		want   int
	}{
		{"no user", validBody, 0, http.StatusUnauthorized},
		{"empty body", "", 3, http.StatusBadRequest},
		{"malformed json", "{", 3, http.StatusBadRequest},
		{"unknown field", `{"artistId":7,"appointmentDate":"2024-03-15","startTime":"10:00","foo":1}`, 3, http.StatusBadRequest},
		{"missing artist", `{"appointmentDate":"2024-03-15","startTime":"10:00"}`, 3, http.StatusBadRequest},
		{"bad date", `{"artistId":7,"appointmentDate":"15.03.2024","startTime":"10:00"}`, 3, http.StatusBadRequest},
		{"bad time", `{"artistId":7,"appointmentDate":"2024-03-15","startTime":"25:00"}`, 3, http.StatusBadRequest},
		{"short duration", `{"artistId":7,"appointmentDate":"2024-03-15","startTime":"10:00","durationMinutes":5}`, 3, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			h := NewHandler(uc, logger.Nop())

			rr := httptest.NewRecorder()
			h.Handle(rr, newRequest(t, tt.body, tt.userID))

			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_ValidationDetails(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.Nop())

	rr := httptest.NewRecorder()
	h.Handle(rr, newRequest(t, `{"artistId":7,"appointmentDate":"2024-03-15","startTime":"9am"}`, 3))

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var out handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Contains(t, out.Details, "startTime")
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{createBooking.ErrArtistNotFound, http.StatusNotFound},
		{createBooking.ErrArtistNotBookable, http.StatusNotFound},
		{createBooking.ErrCustomerNotFound, http.StatusNotFound},
		{createBooking.ErrInvalidDate, http.StatusBadRequest},
		{createBooking.ErrDateTooFarInFuture, http.StatusBadRequest},
		{createBooking.ErrTooLateToBook, http.StatusBadRequest},
		{createBooking.ErrInvalidRange, http.StatusBadRequest},
		{createBooking.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: Create: %w", createBooking.ErrStorageTimeout, context.DeadlineExceeded), http.StatusGatewayTimeout},
		{fmt.Errorf("%w: Create: boom", createBooking.ErrStorageUnavailable), http.StatusServiceUnavailable},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.Nop())

			rr := httptest.NewRecorder()
			h.Handle(rr, newRequest(t, validBody, 3))

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

package set_availability_window

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/logger"
)

type stubService struct {
	got *models.SetWindowRequest
	err error
}

func (s *stubService) SetWindow(_ context.Context, req *models.SetWindowRequest) (*models.WindowResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.WindowResponse{ID: 1, ArtistID: req.ArtistID, Date: req.Date.Format("2006-01-02"), IsAvailable: req.IsAvailable}, nil
}

func put(date, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/artists/3/availability/"+date, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"artistId": "3", "date": date})
	return req.WithContext(middleware.WithUserID(req.Context(), 30))
}

func TestHandle_OpenDay(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.Nop())

	rr := httptest.NewRecorder()
	h.Handle(rr, put("2024-03-20", `{"startTime":"09:00","endTime":"17:00","isAvailable":true}`))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(3), svc.got.ArtistID)
	assert.Equal(t, int64(30), svc.got.UserID)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), svc.got.Date)
	assert.Equal(t, "09:00", svc.got.StartTime)
	assert.True(t, svc.got.IsAvailable)
}

func TestHandle_ClosedDayWithoutTimes(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.Nop())

	rr := httptest.NewRecorder()
	h.Handle(rr, put("2024-03-21", `{"isAvailable":false}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, svc.got.IsAvailable)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		date string
		body string
		err  error
		want int
	}{
		{"bad date", "2024-13-01", `{"isAvailable":true}`, nil, http.StatusBadRequest},
		{"missing flag", "2024-03-20", `{"startTime":"09:00","endTime":"17:00"}`, nil, http.StatusBadRequest},
		{"bad time", "2024-03-20", `{"startTime":"9","endTime":"17:00","isAvailable":true}`, nil, http.StatusBadRequest},
		{"not owner", "2024-03-20", `{"isAvailable":false}`, availability.ErrAccessDenied, http.StatusForbidden},
		{"no artist", "2024-03-20", `{"isAvailable":false}`, availability.ErrArtistNotFound, http.StatusNotFound},
		{"inverted range", "2024-03-20", `{"startTime":"17:00","endTime":"09:00","isAvailable":true}`, availability.ErrInvalidRange, http.StatusBadRequest},
		{"storage down", "2024-03-20", `{"isAvailable":false}`, availability.ErrStorageUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, logger.Nop())

			rr := httptest.NewRecorder()
			h.Handle(rr, put(tt.date, tt.body))

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

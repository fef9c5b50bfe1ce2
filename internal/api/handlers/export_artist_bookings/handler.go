package export_artist_bookings

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings"
)

const (
	msgInvalidArtistID = "некорректный ID артиста"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidParams   = "некорректные параметры запроса"
	msgArtistNotFound  = "артист не найден"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/bookings/export
// Те же фильтры, что и у списка бронирований; ответ text/csv
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathID(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/bookings/export - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /artists/{id}/bookings/export - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(artistID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /artists/{id}/bookings/export - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetArtistBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /artists/{id}/bookings/export - Access denied: artist_id=%d, user_id=%d", artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrStorageTimeout):
			h.logger.Error("GET /artists/{id}/bookings/export - Storage timeout: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, bookings.ErrStorageUnavailable):
			h.logger.Error("GET /artists/{id}/bookings/export - Storage unavailable: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("GET /artists/{id}/bookings/export - Failed to get bookings: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// CSV собирается целиком до отправки заголовков
	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		h.logger.Error("GET /artists/{id}/bookings/export - Failed to write CSV: artist_id=%d, error=%v", artistID, err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("bookings_%d_%s.csv", artistID, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	h.logger.Info("GET /artists/{id}/bookings/export - Exported %d bookings: artist_id=%d", result.Total, artistID)
}

package get_artist_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings/models"
)

const (
	msgInvalidArtistID = "некорректный ID артиста"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidPeriod   = "некорректный период"
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

// Handle GET /api/v1/artists/{artistId}/bookings/stats
// Query params: period (опционально, по умолчанию all)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathID(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/bookings/stats - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /artists/{id}/bookings/stats - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	stats, err := h.service.GetArtistStats(r.Context(), &models.GetArtistStatsRequest{
		UserID:   userID,
		ArtistID: artistID,
		Period:   r.URL.Query().Get("period"),
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /artists/{id}/bookings/stats - Access denied: artist_id=%d, user_id=%d", artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, bookings.ErrStorageTimeout):
			h.logger.Error("GET /artists/{id}/bookings/stats - Storage timeout: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, bookings.ErrStorageUnavailable):
			h.logger.Error("GET /artists/{id}/bookings/stats - Storage unavailable: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("GET /artists/{id}/bookings/stats - Failed to get stats: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /artists/{id}/bookings/stats - Stats retrieved: artist_id=%d, total=%d", artistID, stats.Total)
	handlers.RespondJSON(w, http.StatusOK, stats)
}

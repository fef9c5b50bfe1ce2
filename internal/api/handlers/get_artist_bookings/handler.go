package get_artist_bookings

import (
	"errors"
	"net/http"

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

// Handle GET /api/v1/artists/{artistId}/bookings
// Query params: status, period (all, today, this_week, this_month, last_30_days), date,
// includeCancelled, sort (date_desc, date_asc, customer_name, amount_desc)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathID(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/bookings - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /artists/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(artistID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /artists/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что пользователь - владелец профиля артиста
	result, err := h.service.GetArtistBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrArtistNotFound):
			h.logger.Warn("GET /artists/{id}/bookings - Artist not found: artist_id=%d", artistID)
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /artists/{id}/bookings - Access denied: artist_id=%d, user_id=%d", artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /artists/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrStorageTimeout):
			h.logger.Error("GET /artists/{id}/bookings - Storage timeout: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, bookings.ErrStorageUnavailable):
			h.logger.Error("GET /artists/{id}/bookings - Storage unavailable: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("GET /artists/{id}/bookings - Failed to get bookings: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /artists/{id}/bookings - Bookings retrieved successfully: artist_id=%d, count=%d",
		artistID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

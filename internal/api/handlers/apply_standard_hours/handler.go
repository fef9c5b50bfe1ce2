package apply_standard_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability"
)

const (
	msgInvalidArtistID    = "некорректный ID артиста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные параметры графика"
	msgInvalidRange       = "время открытия должно быть раньше времени закрытия"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgArtistNotFound     = "артист не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/artists/{artistId}/availability/standard-hours
// Открывает дни диапазона с одинаковым временем работы (по умолчанию неделя 09:00-17:00)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathID(r, "artistId")
	if err != nil {
		h.logger.Warn("POST /artists/{id}/availability/standard-hours - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /artists/{id}/availability/standard-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req StandardHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /artists/{id}/availability/standard-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if details := handlers.Validate(&req); details != nil {
		h.logger.Warn("POST /artists/{id}/availability/standard-hours - Validation failed: %v", details)
		handlers.RespondValidationError(w, msgValidationFailed, details)
		return
	}

	serviceReq, err := req.ToServiceRequest(artistID, userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgValidationFailed)
		return
	}

	result, err := h.service.ApplyStandardHours(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /artists/{id}/availability/standard-hours - Access denied: artist_id=%d, user_id=%d", artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, availability.ErrStorageTimeout):
			h.logger.Error("POST /artists/{id}/availability/standard-hours - Storage timeout: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, availability.ErrStorageUnavailable):
			h.logger.Error("POST /artists/{id}/availability/standard-hours - Storage unavailable: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("POST /artists/{id}/availability/standard-hours - Failed to apply hours: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /artists/{id}/availability/standard-hours - Opened %d days for artist_id=%d", result.AffectedDays, artistID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

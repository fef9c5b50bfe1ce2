package update_artist_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/settings"
)

const (
	msgInvalidArtistID    = "некорректный ID артиста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные значения настроек"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgArtistNotFound     = "артист не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/artists/{artistId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathID(r, "artistId")
	if err != nil {
		h.logger.Warn("PUT /artists/{id}/settings - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /artists/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /artists/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if details := handlers.Validate(&req); details != nil {
		h.logger.Warn("PUT /artists/{id}/settings - Validation failed: %v", details)
		handlers.RespondValidationError(w, msgValidationFailed, details)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(artistID, userID))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /artists/{id}/settings - Access denied: artist_id=%d, user_id=%d", artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /artists/{id}/settings - Invalid settings: %v", err)
			handlers.RespondValidationError(w, msgValidationFailed, map[string]string{"_": err.Error()})

		case errors.Is(err, settings.ErrStorageTimeout):
			h.logger.Error("PUT /artists/{id}/settings - Storage timeout: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, settings.ErrStorageUnavailable):
			h.logger.Error("PUT /artists/{id}/settings - Storage unavailable: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("PUT /artists/{id}/settings - Failed to update settings: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /artists/{id}/settings - Settings updated: artist_id=%d", artistID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

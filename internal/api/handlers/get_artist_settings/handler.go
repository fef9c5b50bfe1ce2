package get_artist_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/settings"
)

const (
	msgInvalidArtistID = "некорректный ID артиста"
	msgArtistNotFound  = "артист не найден"
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

// Handle GET /api/v1/artists/{artistId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathID(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/settings - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	result, err := h.service.Get(r.Context(), artistID)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, settings.ErrStorageTimeout):
			h.logger.Error("GET /artists/{id}/settings - Storage timeout: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, settings.ErrStorageUnavailable):
			h.logger.Error("GET /artists/{id}/settings - Storage unavailable: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("GET /artists/{id}/settings - Failed to get settings: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

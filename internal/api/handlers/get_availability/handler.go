package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
)

const (
	msgInvalidArtistID = "некорректный ID артиста"
	msgInvalidRange    = "ожидаются параметры from и to в формате YYYY-MM-DD"
	msgRangeTooLong    = "некорректный диапазон дат"
	msgArtistNotFound  = "артист не найден"
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

// Handle GET /api/v1/artists/{artistId}/availability
// Query params: from, to (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathID(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/availability - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	from, errFrom := handlers.ParseDate(r.URL.Query().Get("from"))
	to, errTo := handlers.ParseDate(r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /artists/{id}/availability - Invalid range: from=%v, to=%v", errFrom, errTo)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.GetWindows(r.Context(), &models.GetWindowsRequest{
		ArtistID: artistID,
		From:     from,
		To:       to,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, availability.ErrInvalidInput), errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("GET /artists/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, availability.ErrStorageTimeout):
			h.logger.Error("GET /artists/{id}/availability - Storage timeout: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, availability.ErrStorageUnavailable):
			h.logger.Error("GET /artists/{id}/availability - Storage unavailable: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("GET /artists/{id}/availability - Failed to get windows: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /artists/{id}/availability - Windows retrieved: artist_id=%d, count=%d", artistID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

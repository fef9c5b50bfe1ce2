package set_availability_window

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability"
)

const (
	msgInvalidArtistID    = "некорректный ID артиста"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные окна доступности"
	msgInvalidRange       = "время начала должно быть раньше времени окончания"
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

// Handle PUT /api/v1/artists/{artistId}/availability/{date}
// Повторная запись на ту же дату заменяет окно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathID(r, "artistId")
	if err != nil {
		h.logger.Warn("PUT /artists/{id}/availability/{date} - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("PUT /artists/{id}/availability/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /artists/{id}/availability/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /artists/{id}/availability/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if details := handlers.Validate(&req); details != nil {
		h.logger.Warn("PUT /artists/{id}/availability/{date} - Validation failed: %v", details)
		handlers.RespondValidationError(w, msgValidationFailed, details)
		return
	}

	window, err := h.service.SetWindow(r.Context(), req.ToServiceRequest(artistID, userID, date))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /artists/{id}/availability/{date} - Access denied: artist_id=%d, user_id=%d", artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidRange), errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /artists/{id}/availability/{date} - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrStorageTimeout):
			h.logger.Error("PUT /artists/{id}/availability/{date} - Storage timeout: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, availability.ErrStorageUnavailable):
			h.logger.Error("PUT /artists/{id}/availability/{date} - Storage unavailable: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("PUT /artists/{id}/availability/{date} - Failed to set window: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /artists/{id}/availability/{date} - Window saved: artist_id=%d, date=%s, available=%t",
		artistID, window.Date, window.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, window)
}

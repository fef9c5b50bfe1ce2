package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ArtistScheduling/internal/usecase/get_available_slots"
)

const (
	msgInvalidArtistID   = "некорректный ID артиста"
	msgMissingDate       = "дата обязательна"
	msgInvalidParams     = "некорректные параметры запроса, ожидается date=YYYY-MM-DD и duration в минутах"
	msgArtistNotFound    = "артист не найден"
	msgArtistNotBookable = "артист не принимает бронирования"
	msgInvalidDate       = "дата в прошлом"
	msgDateTooFar        = "дата слишком далеко в будущем"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathID(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/available-slots - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /artists/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(artistID, dateStr, r.URL.Query().Get("duration"))
	if err != nil {
		h.logger.Warn("GET /artists/{id}/available-slots - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrArtistNotFound):
			h.logger.Warn("GET /artists/{id}/available-slots - Artist not found: artist_id=%d", artistID)
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, getAvailableSlots.ErrArtistNotBookable):
			h.logger.Warn("GET /artists/{id}/available-slots - Artist not bookable: artist_id=%d", artistID)
			handlers.RespondNotFound(w, msgArtistNotBookable)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput), errors.Is(err, getAvailableSlots.ErrInvalidRange):
			h.logger.Warn("GET /artists/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrStorageTimeout):
			h.logger.Error("GET /artists/{id}/available-slots - Storage timeout: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, getAvailableSlots.ErrStorageUnavailable):
			h.logger.Error("GET /artists/{id}/available-slots - Storage unavailable: artist_id=%d, error=%v", artistID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("GET /artists/{id}/available-slots - Failed to get slots: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /artists/{id}/available-slots - Slots retrieved successfully: artist_id=%d, date=%s, slots_count=%d",
		artistID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

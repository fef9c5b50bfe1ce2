package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ArtistScheduling/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "выбранное время недоступно"
	msgArtistNotFound     = "артист не найден"
	msgArtistNotBookable  = "артист не принимает бронирования"
	msgCustomerNotFound   = "клиент не найден"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для бронирования этого времени"
	msgInvalidRange       = "время окончания должно быть позже времени начала"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Клиент берется из заголовка X-User-ID (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if details := handlers.Validate(&req); details != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", details)
		handlers.RespondValidationError(w, msgValidationFailed, details)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgValidationFailed)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: customer_id=%d, artist_id=%d, error=%v",
				customerID, req.ArtistID, err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrArtistNotFound):
			h.logger.Warn("POST /bookings - Artist not found: artist_id=%d", req.ArtistID)
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, createBooking.ErrArtistNotBookable):
			h.logger.Warn("POST /bookings - Artist not bookable: artist_id=%d", req.ArtistID)
			handlers.RespondNotFound(w, msgArtistNotBookable)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, createBooking.ErrStorageTimeout):
			h.logger.Error("POST /bookings - Storage timeout: customer_id=%d, error=%v", customerID, err)
			handlers.RespondStorageTimeout(w)

		case errors.Is(err, createBooking.ErrStorageUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: customer_id=%d, error=%v", customerID, err)
			handlers.RespondStorageUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, artist_id=%d, error=%v",
				customerID, req.ArtistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, artist_id=%d, status=%s",
		result.ID, customerID, req.ArtistID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

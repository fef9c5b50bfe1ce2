package update_booking_status

import (
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Event string `json:"event" validate:"required,booking_event"` // accept, reject, complete, cancel
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(bookingID, userID int64) *models.ChangeStatusRequest {
	return &models.ChangeStatusRequest{
		BookingID: bookingID,
		UserID:    userID,
		Event:     r.Event,
	}
}

package set_availability_window

import (
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
)

// SetWindowRequest HTTP request model.
// Для закрытого дня (isAvailable=false) время не требуется.
type SetWindowRequest struct {
	StartTime   string `json:"startTime,omitempty" validate:"omitempty,timeofday"`
	EndTime     string `json:"endTime,omitempty" validate:"omitempty,timeofday"`
	IsAvailable *bool  `json:"isAvailable" validate:"required"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetWindowRequest) ToServiceRequest(artistID, userID int64, date time.Time) *models.SetWindowRequest {
	return &models.SetWindowRequest{
		UserID:      userID,
		ArtistID:    artistID,
		Date:        date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: *r.IsAvailable,
	}
}

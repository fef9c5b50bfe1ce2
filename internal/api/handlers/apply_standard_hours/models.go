package apply_standard_hours

import (
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
)

// StandardHoursRequest HTTP request model. Все поля опциональны.
type StandardHoursRequest struct {
	From      string `json:"from,omitempty" validate:"omitempty,isodate"`
	Days      int    `json:"days,omitempty" validate:"gte=0,lte=92"`
	OpenTime  string `json:"openTime,omitempty" validate:"omitempty,timeofday"`
	CloseTime string `json:"closeTime,omitempty" validate:"omitempty,timeofday"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *StandardHoursRequest) ToServiceRequest(artistID, userID int64) (*models.StandardHoursRequest, error) {
	from, err := handlers.ParseOptionalDate(r.From)
	if err != nil {
		return nil, err
	}
	return &models.StandardHoursRequest{
		UserID:    userID,
		ArtistID:  artistID,
		From:      from,
		Days:      r.Days,
		OpenTime:  r.OpenTime,
		CloseTime: r.CloseTime,
	}, nil
}

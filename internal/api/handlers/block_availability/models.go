package block_availability

import (
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
)

// BlockRequest HTTP request model. Все поля опциональны.
type BlockRequest struct {
	From string `json:"from,omitempty" validate:"omitempty,isodate"`
	Days int    `json:"days,omitempty" validate:"gte=0,lte=92"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *BlockRequest) ToServiceRequest(artistID, userID int64) (*models.BlockAllRequest, error) {
	from, err := handlers.ParseOptionalDate(r.From)
	if err != nil {
		return nil, err
	}
	return &models.BlockAllRequest{
		UserID:   userID,
		ArtistID: artistID,
		From:     from,
		Days:     r.Days,
	}, nil
}

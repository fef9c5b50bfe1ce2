package copy_week

import (
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
)

// CopyWeekRequest HTTP request model. Тело опционально.
type CopyWeekRequest struct {
	SourceWeekStart string `json:"sourceWeekStart,omitempty" validate:"omitempty,isodate"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CopyWeekRequest) ToServiceRequest(artistID, userID int64) (*models.CopyWeekRequest, error) {
	start, err := handlers.ParseOptionalDate(r.SourceWeekStart)
	if err != nil {
		return nil, err
	}
	return &models.CopyWeekRequest{
		UserID:          userID,
		ArtistID:        artistID,
		SourceWeekStart: start,
	}, nil
}

package get_available_slots

import (
	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ArtistScheduling/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ArtistID        int64           `json:"artistId"`
	Date            string          `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Label     string `json:"label"`     // "09:00 AM"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Label:     slot.Label,
		}
	}

	return &AvailableSlotsResponse{
		ArtistID:        resp.ArtistID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(artistID int64, dateStr, durationStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	duration, err := handlers.ParseOptionalInt(durationStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ArtistID:        artistID,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}

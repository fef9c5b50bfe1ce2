package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID      int64             // ID клиента (из заголовка X-User-ID)
	ArtistID        int64             // ID артиста
	Date            time.Time         // Дата записи (без времени)
	StartTime       types.TimeString  // Время начала, например "10:00"
	EndTime         *types.TimeString // Время окончания (опционально)
	DurationMinutes int               // Длительность, 0 = по умолчанию из настроек
	Amount          *float64          // Стоимость (опционально, по умолчанию нижняя граница прайса)
	Notes           *string           // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	CustomerID      int64
	ArtistID        int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	Amount          float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

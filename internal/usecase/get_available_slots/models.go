package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ArtistID        int64     // ID артиста
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Длительность записи, 0 = длительность по умолчанию из настроек артиста
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ArtistID        int64
	Date            time.Time
	DurationMinutes int    // Фактически использованная длительность
	Slots           []Slot // По возрастанию времени начала
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // "10:00"
	EndTime   types.TimeString // "12:00"
	Label     string           // "10:00 AM"
}

package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/internal/infra/cache/slots"
)

// ArtistRepository интерфейс репозитория артистов
type ArtistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Artist, error)
}

// SettingsProvider возвращает действующие настройки артиста (сохраненные или по умолчанию)
type SettingsProvider interface {
	Effective(ctx context.Context, artistID int64) (*domain.ArtistSettings, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByDate(ctx context.Context, artistID int64, date time.Time) (*domain.AvailabilityWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByArtistWithFilter(ctx context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error)
}

// SlotCache кэш рассчитанных слотов
type SlotCache interface {
	Get(ctx context.Context, artistID int64, date time.Time, p slots.Params) ([]domain.AvailableSlot, bool, error)
	Generation(ctx context.Context, artistID int64, date time.Time) (int64, error)
	Set(ctx context.Context, artistID int64, date time.Time, p slots.Params, generation int64, result []domain.AvailableSlot) error
}

// Metrics счетчики обращений к кэшу
type Metrics interface {
	RecordSlotCache(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

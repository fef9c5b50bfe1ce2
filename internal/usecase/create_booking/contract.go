package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByArtistWithFilter(ctx context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByDate(ctx context.Context, artistID int64, date time.Time) (*domain.AvailabilityWindow, error)
}

// ArtistRepository интерфейс репозитория артистов
type ArtistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Artist, error)
}

// SettingsProvider возвращает действующие настройки артиста
type SettingsProvider interface {
	Effective(ctx context.Context, artistID int64) (*domain.ArtistSettings, error)
}

// SlotCache интерфейс кэша рассчитанных слотов
type SlotCache interface {
	Invalidate(ctx context.Context, artistID int64, dates ...time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные счетчики
type Metrics interface {
	RecordBookingCreated(status string)
	RecordSlotConflict(reason string)
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

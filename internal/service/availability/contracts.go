package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	UpsertMany(ctx context.Context, windows []*domain.AvailabilityWindow) error
	GetByDateRange(ctx context.Context, artistID int64, from, to time.Time) ([]*domain.AvailabilityWindow, error)
}

// ArtistRepository интерфейс репозитория артистов
type ArtistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Artist, error)
}

// SlotCache интерфейс кэша рассчитанных слотов
type SlotCache interface {
	Invalidate(ctx context.Context, artistID int64, dates ...time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

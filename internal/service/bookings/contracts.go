package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByArtistWithFilter(ctx context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error)
	CountByArtist(ctx context.Context, filter domain.ArtistBookingsFilter) (int, error)
	GetArtistStats(ctx context.Context, artistID int64, from, to *time.Time) (*domain.ArtistStats, error)
	GetCustomerInsights(ctx context.Context, artistID int64, since time.Time) (*domain.CustomerInsights, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
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

// Metrics счетчики переходов статусов
type Metrics interface {
	RecordBookingTransition(from, to string)
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

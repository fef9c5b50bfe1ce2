package settings

import (
	"context"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
)

// ArtistRepository интерфейс репозитория артистов и их настроек
type ArtistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Artist, error)
	GetSettings(ctx context.Context, artistID int64) (*domain.ArtistSettings, error)
	UpsertSettings(ctx context.Context, s *domain.ArtistSettings) (*domain.ArtistSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_artist_stats

import (
	"context"

	"github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings/models"
)

type BookingService interface {
	GetArtistStats(ctx context.Context, req *models.GetArtistStatsRequest) (*models.ArtistStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

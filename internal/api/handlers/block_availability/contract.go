package block_availability

import (
	"context"

	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
)

type AvailabilityService interface {
	BlockAll(ctx context.Context, req *models.BlockAllRequest) (*models.BulkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

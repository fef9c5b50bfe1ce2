package copy_week

import (
	"context"

	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
)

type AvailabilityService interface {
	CopyWeekForward(ctx context.Context, req *models.CopyWeekRequest) (*models.BulkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

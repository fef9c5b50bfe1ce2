package apply_standard_hours

import (
	"context"

	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
)

type AvailabilityService interface {
	ApplyStandardHours(ctx context.Context, req *models.StandardHoursRequest) (*models.BulkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_availability

import (
	"context"

	"github.com/m04kA/SMC-ArtistScheduling/internal/service/availability/models"
)

type AvailabilityService interface {
	GetWindows(ctx context.Context, req *models.GetWindowsRequest) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_daily_availability

import (
	"context"

	availabilityUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/get_daily_availability"
)

type AvailabilityUseCase interface {
	Execute(ctx context.Context, req availabilityUC.Request) (*availabilityUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

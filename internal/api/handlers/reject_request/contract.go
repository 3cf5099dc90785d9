package reject_request

import (
	"context"

	rejectRequestUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/reject_request"
)

type RejectRequestUseCase interface {
	Execute(ctx context.Context, req *rejectRequestUC.Request) (*rejectRequestUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package accept_request

import (
	"context"

	acceptRequestUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/accept_request"
)

type AcceptRequestUseCase interface {
	Execute(ctx context.Context, req *acceptRequestUC.Request) (*acceptRequestUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

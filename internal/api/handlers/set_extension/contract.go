package set_extension

import (
	"context"

	setExtensionUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/set_extension"
)

type SetExtensionUseCase interface {
	Execute(ctx context.Context, req *setExtensionUC.Request) (*setExtensionUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

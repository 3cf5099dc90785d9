package check_conflict

import (
	"context"

	checkConflictUC "github.com/m04kA/PBR-SchedulingService/internal/usecase/check_conflict"
)

type CheckConflictUseCase interface {
	Execute(ctx context.Context, req *checkConflictUC.Request) (*checkConflictUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

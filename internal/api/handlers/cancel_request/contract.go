package cancel_request

import (
	"context"

	"github.com/m04kA/PBR-SchedulingService/internal/service/requests/models"
)

type RequestService interface {
	Cancel(ctx context.Context, id int64, req *models.CancelRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
